package easyeda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nilskiefer/kicad-jlcimport/internal/logger"
)

const jlcSearchURL = "https://jlcpcb.com/api/overseas-pcb-order/v1/shoppingCart/smtGood/selectSmtComponentList"

/*
	The assembly part search lives on the JLCPCB side, not on
	easyeda.com, and takes a POST with the full filter envelope even
	when only the keyword is set.
*/
type jlcSearchRequest struct {
	ComponentAttributes  []string `json:"componentAttributes"`
	ComponentBrand       string   `json:"componentBrand"`
	ComponentLibraryType string   `json:"componentLibraryType"`
	CurrentPage          int      `json:"currentPage"`
	Keyword              *string  `json:"keyword"`
	PageSize             int      `json:"pageSize"`
	SearchSource         string   `json:"searchSource"`
	StockFlag            *string  `json:"stockFlag"`
}

type jlcSearchResponse struct {
	Code int `json:"code"`
	Data struct {
		ComponentPageInfo struct {
			HasNextPage bool            `json:"hasNextPage"`
			List        []*SearchResult `json:"list"`
		} `json:"componentPageInfo"`
	} `json:"data"`
}

type SearchResult struct {
	LCSC         string `json:"componentCode"`
	MFRPart      string `json:"componentModelEn"`
	Package      string `json:"componentSpecificationEn"`
	Manufacturer string `json:"componentBrandEn"`
	Description  string `json:"describe"`
	LibraryType  string `json:"componentLibraryType"`
	Stock        int    `json:"stockCount"`
}

/*
	SearchParts queries the JLCPCB assembly catalog by keyword and
	returns the first page of matches.
*/
func (c *Client) SearchParts(ctx context.Context, keyword string) ([]*SearchResult, error) {
	c.lock.Lock()
	go func() {
		defer c.lock.Unlock()
		time.Sleep(1500 * time.Millisecond)
	}()

	body, err := json.Marshal(jlcSearchRequest{
		ComponentAttributes: []string{},
		CurrentPage:         1,
		PageSize:            25,
		SearchSource:        "search",
		Keyword:             &keyword,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", jlcSearchURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Add("Content-Type", "application/json")

	logger.Debug("POST %s keyword=%q", jlcSearchURL, keyword)
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("POST %s: %s", jlcSearchURL, resp.Status)
	}

	response := jlcSearchResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	return response.Data.ComponentPageInfo.List, nil
}
