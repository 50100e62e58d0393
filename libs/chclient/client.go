package chclient

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SequenceLen is the number of generated values the challenge server
// expects in a submission.
const SequenceLen = 128

// Client represents a challenge API client bound to one endpoint.
type Client struct {
	hclient   *http.Client
	endpoint  string
	useragent string
}

// NewClient creates a new challenge client talking to the given endpoint URL.
func NewClient(endpoint, useragent string) *Client {
	return &Client{
		hclient: &http.Client{
			Transport: &http.Transport{
				Proxy:           nil,
				IdleConnTimeout: time.Second * 3,
			},
			Timeout: time.Second * 10,
		},
		endpoint:  endpoint,
		useragent: useragent,
	}
}

func badStatusCode(s int, body []byte) error {
	return errors.Errorf("unexpected status code %v: %v", s, strings.TrimSpace(string(body)))
}

// Challenge is the seed handout from the challenge endpoint. UID is opaque
// and is echoed back verbatim on submission.
type Challenge struct {
	UID         json.RawMessage `json:"uid"`
	InitialSeed int32           `json:"initialSeed"`
}

// GetChallenge fetches a fresh uid and initial seed.
func (cl *Client) GetChallenge() (ch Challenge, err error) {
	req, _ := http.NewRequest("GET", cl.endpoint, bytes.NewReader(nil))
	req.Header.Set("user-agent", cl.useragent)
	resp, err := cl.hclient.Do(req)
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		body, _ := ioutil.ReadAll(resp.Body)
		err = badStatusCode(resp.StatusCode, body)
		return
	}
	err = json.NewDecoder(resp.Body).Decode(&ch)
	if err != nil {
		err = errors.WithStack(err)
	}
	return
}

type submission struct {
	UID       json.RawMessage `json:"uid"`
	Generated []int32         `json:"generated"`
}

// SubmitSequence posts the generated values for the given uid and returns
// the raw response body.
func (cl *Client) SubmitSequence(uid json.RawMessage, generated []int32) (body string, err error) {
	buf, err := json.Marshal(submission{UID: uid, Generated: generated})
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	req, _ := http.NewRequest("POST", cl.endpoint, bytes.NewReader(buf))
	req.Header.Set("content-type", "application/json")
	req.Header.Set("user-agent", cl.useragent)
	resp, err := cl.hclient.Do(req)
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	defer resp.Body.Close()
	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	if resp.StatusCode/100 != 2 {
		err = badStatusCode(resp.StatusCode, raw)
		return
	}
	body = string(raw)
	return
}

type verification struct {
	VerificationCode json.RawMessage `json:"verificationCode"`
}

// GetVerificationCode fetches the opaque verification code.
func (cl *Client) GetVerificationCode() (code json.RawMessage, err error) {
	req, _ := http.NewRequest("GET", cl.endpoint, bytes.NewReader(nil))
	req.Header.Set("user-agent", cl.useragent)
	resp, err := cl.hclient.Do(req)
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		body, _ := ioutil.ReadAll(resp.Body)
		err = badStatusCode(resp.StatusCode, body)
		return
	}
	var v verification
	err = json.NewDecoder(resp.Body).Decode(&v)
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	code = v.VerificationCode
	return
}

// SubmitVerificationCode posts a code back and returns the raw response
// body along with its Content-Type, so the caller can decide how to
// interpret it.
func (cl *Client) SubmitVerificationCode(code json.RawMessage) (body, ctype string, err error) {
	buf, err := json.Marshal(verification{VerificationCode: code})
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	req, _ := http.NewRequest("POST", cl.endpoint, bytes.NewReader(buf))
	req.Header.Set("content-type", "application/json")
	req.Header.Set("user-agent", cl.useragent)
	resp, err := cl.hclient.Do(req)
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	defer resp.Body.Close()
	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	if resp.StatusCode/100 != 2 {
		err = badStatusCode(resp.StatusCode, raw)
		return
	}
	body = string(raw)
	ctype = resp.Header.Get("Content-Type")
	return
}
