package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/evanhutnik/weather-etl/internal/common"
	t "github.com/evanhutnik/weather-etl/internal/types"
)

type Place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type ClientOption func(*Client)

type Client struct {
	baseUrl   string
	userAgent string
}

func BaseUrlOption(baseUrl string) ClientOption {
	return func(c *Client) {
		c.baseUrl = baseUrl
	}
}

func UserAgentOption(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

func New(opts ...ClientOption) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseUrl == "" {
		panic("Missing baseUrl in nominatim client")
	}
	if c.userAgent == "" {
		c.userAgent = "weather-etl"
	}
	return c
}

// Search resolves a place name to coordinates. A name the provider does
// not know returns (nil, nil); only transport and decode failures error.
func (c *Client) Search(ctx context.Context, location string) (*t.Coordinates, error) {
	req, err := url.Parse(fmt.Sprintf("%v/search", c.baseUrl))
	if err != nil {
		err = errors.New(fmt.Sprintf("failed to parse nominatim baseUrl %s: %s", c.baseUrl, err.Error()))
		return nil, err
	}

	q := req.Query()
	q.Add("q", location)
	q.Add("format", "json")
	q.Add("limit", "1")
	req.RawQuery = q.Encode()

	ctxReq, _ := http.NewRequestWithContext(ctx, "GET", req.String(), nil)
	ctxReq.Header.Set("User-Agent", c.userAgent)
	resp, err := common.Get(ctxReq, "nominatim")
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = errors.New(fmt.Sprintf("error reading nominatim response body: %s", err.Error()))
		return nil, err
	}

	var places []Place
	err = json.Unmarshal(body, &places)
	if err != nil {
		err = errors.New(fmt.Sprintf("error unmarshalling response from nominatim: %s", err.Error()))
		return nil, err
	} else if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, errors.New(fmt.Sprintf("error parsing nominatim latitude %q: %s", places[0].Lat, err.Error()))
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, errors.New(fmt.Sprintf("error parsing nominatim longitude %q: %s", places[0].Lon, err.Error()))
	}

	return &t.Coordinates{
		Latitude:  lat,
		Longitude: lon,
	}, nil
}
