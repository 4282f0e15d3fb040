package canonical

// ImageRequest is the input of image subfeatures.
type ImageRequest struct {
	File FileInput `json:"file"`
}

// ExplicitItem is one content category with its likelihood on the
// canonical 1-5 scale.
type ExplicitItem struct {
	Label      string `json:"label"`
	Likelihood int    `json:"likelihood"`
}

// ExplicitContent is the standardized record of image/explicit_content.
// NSFWLikelihood is the maximum likelihood over all flagged categories.
type ExplicitContent struct {
	NSFWLikelihood int            `json:"nsfw_likelihood"`
	Items          []ExplicitItem `json:"items"`
}

// LikelihoodFromScore maps a vendor probability in [0,1] onto the
// canonical 1-5 likelihood scale. Scores at or below zero map to 1
// (very unlikely), scores of 1 map to 5 (very likely).
func LikelihoodFromScore(score float64) int {
	switch {
	case score <= 0.2:
		return 1
	case score <= 0.4:
		return 2
	case score <= 0.6:
		return 3
	case score <= 0.8:
		return 4
	default:
		return 5
	}
}
