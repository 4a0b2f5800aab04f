package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Get issues the request once, no retries. A non-2xx status is an error
// naming the upstream and the code.
func Get(req *http.Request, name string) (*http.Response, error) {
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.New(fmt.Sprintf("error on %v api request: %s", name, err.Error()))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, errors.New(fmt.Sprintf("error code %v returned from %v", resp.StatusCode, name))
	}
	return resp, nil
}
