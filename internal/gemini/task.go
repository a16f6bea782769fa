// Package gemini is the remote content gateway: a thin wrapper around the
// official genai client plus the per-task prompt builders and response
// parsers. Cross-cutting policy (gating, debiting, in-flight limits) lives in
// the controller, not here.
package gemini

import "google.golang.org/genai"

// Task enumerates the operations the gateway accepts.
type Task string

const (
	TaskGetSummaries       Task = "getSummaries"
	TaskGetInDepthReport   Task = "getInDepthReport"
	TaskGetTimeline        Task = "getTimeline"
	TaskClassifySearchTerm Task = "classifySearchTerm"
	TaskGetTopicSummary    Task = "getTopicSummary"
	TaskGetPersonSummary   Task = "getPersonSummary"
	TaskGetPersonInDepth   Task = "getPersonInDepth"
	TaskGetSixDegrees      Task = "getSixDegreesOfSeparation"
	TaskGetFamilyTree      Task = "getFamilyTree"
	TaskGenerateImage      Task = "generateImage"
)

const (
	modelFlash = "gemini-2.5-flash"
	modelPro   = "gemini-2.5-pro"
	modelImage = "gemini-2.5-flash-image"
)

// Valid reports whether the task is one the gateway knows.
func (t Task) Valid() bool {
	switch t {
	case TaskGetSummaries, TaskGetInDepthReport, TaskGetTimeline,
		TaskClassifySearchTerm, TaskGetTopicSummary, TaskGetPersonSummary,
		TaskGetPersonInDepth, TaskGetSixDegrees, TaskGetFamilyTree,
		TaskGenerateImage:
		return true
	}
	return false
}

// Model selects the model per task: the pro model for in-depth reports and
// causal chains, the image model for image generation, the flash model for
// everything else.
func (t Task) Model() string {
	switch t {
	case TaskGetInDepthReport, TaskGetPersonInDepth, TaskGetSixDegrees:
		return modelPro
	case TaskGenerateImage:
		return modelImage
	default:
		return modelFlash
	}
}

// Payload is the structured request body for one task. Config carries the
// optional response MIME type and schema for structured tasks.
type Payload struct {
	Prompt string                       `json:"prompt"`
	Config *genai.GenerateContentConfig `json:"config,omitempty"`
}

// Result is the gateway response: exactly one of Text or ImageData is set.
type Result struct {
	Text      string `json:"text,omitempty"`
	ImageData string `json:"imageData,omitempty"`
}
