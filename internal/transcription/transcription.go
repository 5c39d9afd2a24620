// Package transcription fetches transcripts for recorded voice notes from the
// transcription service: publish the recording, poll until done, download the
// text.
package transcription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"sales-insights-go/internal/logger"
)

const mockTranscript = "สวัสดีครับ ผมขอแนะนำบริษัทของเรา สินค้าของเราช่วยลดต้นทุนได้ครับ คุณสมชาย จากบริษัท ทดสอบ จำกัด สนใจงบประมาณ 500,000 บาท ต้องส่งใบเสนอราคาภายในวันศุกร์"

type Client struct {
	host         string
	mock         bool
	httpClient   *http.Client
	pollInterval time.Duration
	log          *logrus.Entry
}

// NewClient builds a transcription client for the given service host. With
// mock enabled, Transcribe returns a canned Thai sales transcript and never
// touches the network.
func NewClient(host string, timeout time.Duration, mock bool) *Client {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &Client{
		host:         strings.TrimRight(host, "/"),
		mock:         mock,
		httpClient:   &http.Client{Timeout: timeout},
		pollInterval: 1500 * time.Millisecond,
		log:          logger.New().WithComponent("transcription"),
	}
}

type publishResponse struct {
	Code int    `json:"code"`
	Data struct {
		MediaID          string `json:"media_id"`
		Status           string `json:"status"`
		TranscriptionURL string `json:"transcription_url"`
	} `json:"data"`
	Reason string `json:"reason,omitempty"`
}

type statusResponse struct {
	Code int    `json:"code"`
	Data struct {
		Status               string  `json:"status"`
		TranscriptionTextURL string  `json:"transcription_text_url"`
		DurationSeconds      float64 `json:"duration_seconds"`
	} `json:"data"`
	Reason string `json:"reason,omitempty"`
}

// Transcribe returns the transcript text for a voice recording URL.
func (c *Client) Transcribe(ctx context.Context, recordingURL string) (string, error) {
	if c.mock {
		return mockTranscript, nil
	}
	if c.host == "" {
		return "", errors.New("transcription service not configured")
	}

	mediaID, existingURL, err := c.publish(ctx, recordingURL)
	if err != nil {
		return "", err
	}
	if existingURL != "" {
		return c.download(ctx, existingURL)
	}

	textURL, err := c.poll(ctx, mediaID)
	if err != nil {
		return "", err
	}
	c.log.WithField("text_url", textURL).Debug("downloading transcript")
	return c.download(ctx, textURL)
}

func (c *Client) publish(ctx context.Context, recordingURL string) (mediaID, existingURL string, err error) {
	endpoint := c.host + "/transcribe?recording_url=" + url.QueryEscape(recordingURL)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, nil)
	if err != nil {
		return "", "", err
	}

	var resp publishResponse
	if err := c.doJSON(req, &resp); err != nil {
		return "", "", fmt.Errorf("transcribe publish: %w", err)
	}
	if resp.Code != 200 {
		return "", "", fmt.Errorf("transcribe publish: code=%d reason=%s", resp.Code, resp.Reason)
	}
	if resp.Data.TranscriptionURL != "" && strings.EqualFold(resp.Data.Status, "success") {
		return "", resp.Data.TranscriptionURL, nil
	}
	return resp.Data.MediaID, "", nil
}

// poll waits for the transcription job to finish, backing off between status
// checks. A reported failure stops the retry immediately.
func (c *Client) poll(ctx context.Context, mediaID string) (string, error) {
	endpoint := c.host + "/status?media_id=" + url.QueryEscape(mediaID)

	var textURL string
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		var s statusResponse
		if err := c.doJSON(req, &s); err != nil {
			return err
		}
		switch strings.ToLower(s.Data.Status) {
		case "success":
			textURL = s.Data.TranscriptionTextURL
			return nil
		case "failed":
			return backoff.Permanent(fmt.Errorf("transcription failed: %s", s.Reason))
		default:
			return fmt.Errorf("transcription still %s", s.Data.Status)
		}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.pollInterval
	b.MaxElapsedTime = 90 * time.Second
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return "", err
	}
	return textURL, nil
}

func (c *Client) download(ctx context.Context, fileURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fileURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download transcript: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download transcript: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
