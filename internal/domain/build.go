package domain

import (
	"fmt"
	"strconv"
)

// DefaultTagPrefix is prepended to every build tag.
const DefaultTagPrefix = "hudson"

// BuildContext holds the metadata of a completed build.
type BuildContext struct {
	ProjectName string
	Number      int
	Result      Result
	Workspace   string
}

// BaseTagName returns the tag name without the result suffix.
func BaseTagName(prefix, project string, number int) string {
	return prefix + "-" + project + "-" + strconv.Itoa(number)
}

// BuildTagName returns the tag that marks the given build and result.
func BuildTagName(prefix, project string, number int, result Result) string {
	return BaseTagName(prefix, project, number) + "-" + result.String()
}

// TagMessage is the annotation written on build tags.
func TagMessage(number int) string {
	return fmt.Sprintf("Build #%d", number)
}
