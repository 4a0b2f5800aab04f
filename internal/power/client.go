package power

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/evanhutnik/weather-etl/internal/common"
	t "github.com/evanhutnik/weather-etl/internal/types"
)

// Daily parameter codes requested from the POWER API, in request order.
var ParameterCodes = []string{"T2M_MAX", "T2M_MIN", "RH2M", "PRECTOTCORR", "WS2M"}

const community = "RE"

// Response is the subset of the POWER daily point payload the pipeline
// relies on: per-parameter mappings of YYYYMMDD date keys to values.
type Response struct {
	Properties struct {
		Parameter map[string]map[string]float64 `json:"parameter"`
	} `json:"properties"`
}

type ClientOption func(*Client)

type Client struct {
	baseUrl string
}

func BaseUrlOption(baseUrl string) ClientOption {
	return func(c *Client) {
		c.baseUrl = baseUrl
	}
}

func New(opts ...ClientOption) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseUrl == "" {
		panic("Missing baseUrl in power client")
	}
	return c
}

// Daily fetches the daily series for every parameter code over the
// inclusive [start, end] range (YYYYMMDD) at the given point. One
// attempt per call; any non-2xx status or transport failure errors.
func (c *Client) Daily(ctx context.Context, coords t.Coordinates, start string, end string) (*Response, error) {
	req, err := url.Parse(c.baseUrl)
	if err != nil {
		err = errors.New(fmt.Sprintf("failed to parse power baseUrl %s: %s", c.baseUrl, err.Error()))
		return nil, err
	}

	q := req.Query()
	q.Add("parameters", strings.Join(ParameterCodes, ","))
	q.Add("community", community)
	q.Add("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	q.Add("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	q.Add("start", start)
	q.Add("end", end)
	q.Add("format", "JSON")
	req.RawQuery = q.Encode()

	ctxReq, _ := http.NewRequestWithContext(ctx, "GET", req.String(), nil)
	resp, err := common.Get(ctxReq, "power")
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = errors.New(fmt.Sprintf("error reading power response body: %s", err.Error()))
		return nil, err
	}

	var respObj Response
	err = json.Unmarshal(body, &respObj)
	if err != nil {
		err = errors.New(fmt.Sprintf("error unmarshalling response from power: %s", err.Error()))
		return nil, err
	}

	return &respObj, nil
}
