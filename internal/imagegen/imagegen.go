// Package imagegen builds image-generation URLs for plan items. The image
// itself is fetched by whatever displays the URL.
package imagegen

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://image.pollinations.ai/prompt/"

var ErrEmptyPrompt = errors.New("no prompt provided")

type Requestor struct {
	baseURL string
}

func NewRequestor(baseURL string) *Requestor {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Requestor{baseURL: baseURL}
}

// URL returns the image URL for prompt, which is encoded as a single path
// segment.
func (r *Requestor) URL(prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}
	return r.baseURL + url.PathEscape(prompt), nil
}

func ExercisePrompt(exercise string) string {
	return fmt.Sprintf("professional gym photo of a person doing %s, proper form, realistic body, sharp lighting, clean background", exercise)
}

func FoodPrompt(item string) string {
	return fmt.Sprintf("high quality delicious healthy food photo of %s, bright lighting, clean plate", item)
}
