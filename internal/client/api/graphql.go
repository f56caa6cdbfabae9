package api

import (
	"github.com/tidwall/gjson"
)

// SummarizeMutation is the GraphQL action the backend exposes for
// summarization.
const SummarizeMutation = "mutation MyCustomActionMutation($arg1: SampleInput!){ actionName(arg1: $arg1) {message} }"

const summaryPath = "data.actionName.message"

type summarizeRequest struct {
	Query     string            `json:"query"`
	Variables summarizeVariable `json:"variables"`
}

type summarizeVariable struct {
	Arg1 summarizeInput `json:"arg1"`
}

type summarizeInput struct {
	YTube string `json:"ytube"`
}

func newSummarizeRequest(videoURL string) summarizeRequest {
	return summarizeRequest{
		Query:     SummarizeMutation,
		Variables: summarizeVariable{Arg1: summarizeInput{YTube: videoURL}},
	}
}

// SummaryMessage reads data.actionName.message from a response envelope.
// Anything else in the envelope, GraphQL errors included, is ignored and a
// missing message yields "".
func SummaryMessage(raw []byte) string {
	return gjson.GetBytes(raw, summaryPath).String()
}
