package mock

import "github.com/fwojciec/wikiwalk"

var _ wikiwalk.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of wikiwalk.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(region *wikiwalk.Region, self wikiwalk.Title) ([]wikiwalk.CandidateLink, error)
	ScanLinksFn    func(region *wikiwalk.Region, self wikiwalk.Title) ([]wikiwalk.CandidateLink, error)
}

func (e *LinkExtractor) ExtractLinks(region *wikiwalk.Region, self wikiwalk.Title) ([]wikiwalk.CandidateLink, error) {
	return e.ExtractLinksFn(region, self)
}

func (e *LinkExtractor) ScanLinks(region *wikiwalk.Region, self wikiwalk.Title) ([]wikiwalk.CandidateLink, error) {
	return e.ScanLinksFn(region, self)
}
