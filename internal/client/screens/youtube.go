package screens

import (
	"regexp"
	"strings"
)

const (
	MsgURLRequired = "Please enter a YouTube video URL"
	MsgURLInvalid  = "Please enter a valid YouTube URL"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([^&]+)`),
	regexp.MustCompile(`youtu\.be/([^?]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^?]+)`),
}

// IsYouTubeURL is a substring check, not URL parsing.
func IsYouTubeURL(u string) bool {
	return strings.Contains(u, "youtube.com/") || strings.Contains(u, "youtu.be/")
}

// ExtractVideoID returns the video id of watch, short and embed links, or ""
// when u is none of them.
func ExtractVideoID(u string) string {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(u); m != nil {
			return m[1]
		}
	}
	return ""
}

func validateVideoURL(u string) string {
	if u == "" {
		return MsgURLRequired
	}
	if !IsYouTubeURL(u) {
		return MsgURLInvalid
	}
	return ""
}
