package storage

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vijaypatidar123/Dream-Nest/config"
)

// Cloudinary talks to the Cloudinary upload API with signed form posts.
// Uploaded images are referenced by their returned secure URL.
type Cloudinary struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	BaseURL   string
	Client    *http.Client
}

func NewCloudinary(cfg *config.Config) *Cloudinary {
	return &Cloudinary{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
		Folder:    cfg.Cloudinary.Folder,
		BaseURL:   "https://api.cloudinary.com/v1_1/" + cfg.Cloudinary.CloudName,
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload sends the image bytes to Cloudinary under the given public ID and
// returns the remote URL.
func (c *Cloudinary) Upload(image []byte, publicID string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("empty image")
	}
	if c.CloudName == "" || c.APIKey == "" || c.APISecret == "" {
		return "", fmt.Errorf("missing cloudinary credentials")
	}

	finalPublicID := publicID
	if c.Folder != "" {
		finalPublicID = c.Folder + "/" + publicID
	}

	payload := base64.StdEncoding.EncodeToString(image)

	form := url.Values{}
	form.Add("file", "data:image/jpeg;base64,"+payload)
	form.Add("api_key", c.APIKey)
	form.Add("public_id", finalPublicID)

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form.Add("timestamp", timestamp)
	form.Add("signature", c.sign(finalPublicID, timestamp))

	body, err := c.post(c.BaseURL+"/image/upload", form)
	if err != nil {
		return "", err
	}

	var cloudRes struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &cloudRes); err != nil {
		return "", fmt.Errorf("invalid cloudinary response: %w", err)
	}
	if cloudRes.Error.Message != "" {
		return "", fmt.Errorf("cloudinary error: %s", cloudRes.Error.Message)
	}

	remoteURL := cloudRes.SecureURL
	if remoteURL == "" {
		remoteURL = cloudRes.URL
	}
	if remoteURL == "" {
		return "", fmt.Errorf("no url returned from cloudinary")
	}

	return remoteURL, nil
}

// Destroy deletes a previously uploaded image by its URL.
// URL format: https://res.cloudinary.com/{cloud_name}/image/upload/v{version}/{public_id}.{format}
func (c *Cloudinary) Destroy(imageURL string) error {
	parts := strings.Split(imageURL, "/")
	if len(parts) < 2 {
		return fmt.Errorf("invalid cloudinary url: %s", imageURL)
	}

	lastPart := parts[len(parts)-1]
	publicID := strings.Split(lastPart, ".")[0]

	finalPublicID := publicID
	if c.Folder != "" {
		finalPublicID = c.Folder + "/" + publicID
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	form := url.Values{}
	form.Add("public_id", finalPublicID)
	form.Add("api_key", c.APIKey)
	form.Add("timestamp", timestamp)
	form.Add("signature", c.sign(finalPublicID, timestamp))

	body, err := c.post(c.BaseURL+"/image/destroy", form)
	if err != nil {
		return err
	}

	var deleteRes struct {
		Result string `json:"result"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &deleteRes); err != nil {
		return fmt.Errorf("invalid cloudinary response: %w", err)
	}
	if deleteRes.Error.Message != "" {
		return fmt.Errorf("cloudinary error: %s", deleteRes.Error.Message)
	}
	if deleteRes.Result != "ok" {
		return fmt.Errorf("cloudinary deletion result: %s", deleteRes.Result)
	}

	return nil
}

// Signatures must be SHA1 over the sorted params plus the API secret.
func (c *Cloudinary) sign(publicID, timestamp string) string {
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, c.APISecret)
	return fmt.Sprintf("%x", sha1.Sum([]byte(signatureString)))
}

func (c *Cloudinary) post(endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cloudinary request failed with status %d: %s", res.StatusCode, string(body))
	}

	return body, nil
}
