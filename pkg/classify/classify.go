// Package classify decides whether a changed object key is served through a
// CDN distribution and, if so, splits it into the origin path prefix and the
// residual object path.
package classify

import (
	"strings"
)

// Classifier holds the recognized deployment-stage prefixes and the
// visibility folder name. Both are injected configuration (see pkg/ssm), not
// literals, so organizational naming changes do not need a code release.
type Classifier struct {
	StagePrefixes    []string
	VisibilityMarker string
}

// ClassifiedPath is the split of an eligible key. OriginPath + ResidualKey
// reconstructs the original key exactly.
type ClassifiedPath struct {
	Stage       string
	Visibility  string
	OriginPath  string
	ResidualKey string
}

// Classify splits key as /{stage}/{visibility}/{resource...}. A key is
// eligible when it has all three segments, the visibility segment equals the
// marker, and the stage segment starts with a recognized prefix. Ineligible
// keys are a quiet no, never an error: S3 notification filters cannot express
// this rule, so every change in the bucket lands here and most are discarded.
func (c Classifier) Classify(key string) (*ClassifiedPath, bool) {
	parts := strings.SplitN(strings.TrimPrefix(key, "/"), "/", 3)
	if len(parts) < 3 || parts[2] == "" {
		return nil, false
	}

	stage, visibility := parts[0], parts[1]
	if visibility != c.VisibilityMarker {
		return nil, false
	}
	if !c.recognizedStage(stage) {
		return nil, false
	}

	return &ClassifiedPath{
		Stage:       stage,
		Visibility:  visibility,
		OriginPath:  "/" + stage + "/" + visibility,
		ResidualKey: "/" + parts[2],
	}, true
}

func (c Classifier) recognizedStage(stage string) bool {
	for _, prefix := range c.StagePrefixes {
		if strings.HasPrefix(stage, prefix) {
			return true
		}
	}
	return false
}
