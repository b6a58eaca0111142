package easyeda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nilskiefer/kicad-jlcimport/internal/logger"
)

const editorVersion = "6.4.19.5"

/*
	Client fetches component documents and 3D meshes from the EasyEDA
	API. Requests are spaced out behind a lock so batch imports stay
	polite.
*/
type Client struct {
	base   string
	models string
	hc     *http.Client
	lock   *sync.Mutex
}

func NewClient(base, models string, timeout time.Duration) *Client {
	if base == "" {
		base = "https://easyeda.com"
	}
	if models == "" {
		models = "https://modules.easyeda.com"
	}

	return &Client{
		base:   strings.TrimRight(base, "/"),
		models: strings.TrimRight(models, "/"),
		hc:     &http.Client{Timeout: timeout},
		lock:   &sync.Mutex{},
	}
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	c.lock.Lock()
	go func() {
		defer c.lock.Unlock()
		time.Sleep(500 * time.Millisecond)
	}()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	logger.Debug("GET %s", url)
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

/*
	Component fetches the full document for an LCSC part number, symbol
	and footprint included.
*/
func (c *Client) Component(ctx context.Context, lcsc string) (*ComponentResult, error) {
	url := fmt.Sprintf("%s/api/products/%s/components?version=%s", c.base, lcsc, editorVersion)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	response := componentResponse{}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decoding component %s: %w", lcsc, err)
	}

	if !response.Success {
		return nil, fmt.Errorf("component %s not found", lcsc)
	}

	return &response.Result, nil
}

/*
	Model fetches the raw OBJ text for a 3D model uuid. EasyEDA serves
	the mesh and its material table as one document.
*/
func (c *Client) Model(ctx context.Context, uuid string) (string, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/3dmodel/%s", c.models, uuid))
	if err != nil {
		return "", err
	}

	if len(body) == 0 {
		return "", fmt.Errorf("model %s: empty response", uuid)
	}

	return string(body), nil
}

type componentResponse struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Result  ComponentResult `json:"result"`
}

type ComponentResult struct {
	UUID          string  `json:"uuid"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	DataStr       DataStr `json:"dataStr"`
	PackageDetail struct {
		UUID    string  `json:"uuid"`
		Title   string  `json:"title"`
		DataStr DataStr `json:"dataStr"`
	} `json:"packageDetail"`
	SZLCSC struct {
		Number string `json:"number"`
		URL    string `json:"url"`
	} `json:"szlcsc"`
	Tags []string `json:"tags"`
}

type DataStr struct {
	Head  Head     `json:"head"`
	Shape []string `json:"shape"`
}

type Head struct {
	EditorVersion string            `json:"editorVersion"`
	CPara         map[string]string `json:"c_para"`
	X             float64           `json:"x"`
	Y             float64           `json:"y"`
}
