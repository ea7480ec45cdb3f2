package util

import (
	"fmt"
	"math/rand"
)

// GenerateRequestID returns a human-friendly request identifier for log
// correlation, e.g. "curious_alpaca_3f2a".
func GenerateRequestID() string {
	moods := []string{
		"curious", "patient", "eager", "sleepy", "focused",
		"chatty", "quiet", "helpful", "pensive", "cheerful",
	}
	herd := []string{
		"alpaca", "llama", "vicuna", "guanaco", "camel",
		"mistral", "gemma", "falcon", "qwen", "phi",
	}

	mood := moods[rand.Intn(len(moods))]
	animal := herd[rand.Intn(len(herd))]
	suffix := fmt.Sprintf("%04x", rand.Intn(65536))

	return fmt.Sprintf("%s_%s_%s", mood, animal, suffix)
}
