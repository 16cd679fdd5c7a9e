// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package caption turns document images into short natural-language
// descriptions using the OpenAI vision API. The conversion pipeline weaves
// the descriptions into the Markdown output so image content survives the
// conversion.
package caption

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/officemd/pkg/types"
)

// describePrompt asks the model for a caption. Kept deliberately short; the
// model sees the image itself, not the document it came from.
const describePrompt = "Write a detailed caption for this image."

// openaiAPIURL is the OpenAI chat completions endpoint. Package-level var
// for test substitution.
var openaiAPIURL = "https://api.openai.com/v1/chat/completions"

// ErrNoCredential reports that no API key was configured. Callers treat it
// as "run without captions", not as a fatal error.
var ErrNoCredential = errors.New("no OpenAI API key configured")

// Client calls the OpenAI vision API to describe images.
type Client struct {
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// New returns a caption client for the given credentials. It fails with
// ErrNoCredential when the key is empty. An empty model falls back to
// types.DefaultModel.
func New(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoCredential
	}
	if model == "" {
		model = types.DefaultModel
	}
	return &Client{APIKey: apiKey, Model: model}, nil
}

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// chatMessage is a single message holding mixed text and image content.
type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

// contentPart is one element of a message: either text or an image.
type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

// imageURL carries the image as a base64 data URI.
type imageURL struct {
	URL string `json:"url"`
}

// chatResponse is the response body from the chat completions API.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// chatChoice is one completion returned by the API.
type chatChoice struct {
	Message chatChoiceMessage `json:"message"`
}

// chatChoiceMessage holds the text of a completion.
type chatChoiceMessage struct {
	Content string `json:"content"`
}

// Describe sends one image to the vision API and returns its caption. The
// image travels inline as a data URI, so no upload or retention happens on
// the API side. A single attempt is made per image.
func (c *Client) Describe(ctx context.Context, mimeType string, data []byte) (string, error) {
	uri := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)

	reqBody := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: describePrompt},
					{Type: "image_url", ImageURL: &imageURL{URL: uri}},
				},
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openaiAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OpenAI API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding OpenAI response: %w", err)
	}

	if len(cResp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI API returned no choices")
	}

	text := strings.TrimSpace(cResp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("OpenAI API returned an empty caption")
	}
	return text, nil
}
