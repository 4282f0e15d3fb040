package api4ai

import (
	"strings"

	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
)

// nsfwResponse is the wire shape of the nsfw endpoint. Failures can be
// signalled per-result inside a 200 envelope.
type nsfwResponse struct {
	Results []struct {
		Status struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"status"`
		Entities []struct {
			Classes map[string]float64 `json:"classes"`
		} `json:"entities"`
	} `json:"results"`
}

func (r *nsfwResponse) vendorError() error {
	if len(r.Results) == 0 {
		return canonical.NewProviderError(providerName, "empty results")
	}
	status := r.Results[0].Status
	if strings.Contains(status.Code, "failure") {
		return canonical.NewProviderError(providerName, status.Message)
	}
	return nil
}

func (r *nsfwResponse) classes() map[string]float64 {
	if len(r.Results) == 0 || len(r.Results[0].Entities) == 0 {
		return nil
	}
	return r.Results[0].Entities[0].Classes
}
