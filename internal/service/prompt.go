package service

import (
	"encoding/json"
	"fmt"

	"github.com/cartograph-ai/cartograph/internal/domain"
)

// taskKind enumerates the generative tasks the service runs. Each kind owns
// one prompt template plus a completion profile (token budget, temperature).
type taskKind string

const (
	taskGraph       taskKind = "graph"
	taskTitle       taskKind = "title"
	taskChat        taskKind = "chat"
	taskGreeting    taskKind = "greeting"
	taskConcept     taskKind = "concept"
	taskSearchQuery taskKind = "search_query"
	taskStudyPath   taskKind = "study_path"
)

// taskProfile is the completion budget for one task kind. Query derivation
// runs cold for determinism; path generation runs cooler than free-form
// answers so step structure stays stable.
type taskProfile struct {
	maxTokens   int
	temperature float32
}

var taskProfiles = map[taskKind]taskProfile{
	taskGraph:       {maxTokens: 1000, temperature: 0.7},
	taskTitle:       {maxTokens: 50, temperature: 0.7},
	taskChat:        {maxTokens: 500, temperature: 0.7},
	taskGreeting:    {maxTokens: 500, temperature: 0.7},
	taskConcept:     {maxTokens: 1000, temperature: 0.7},
	taskSearchQuery: {maxTokens: 30, temperature: 0.3},
	taskStudyPath:   {maxTokens: 800, temperature: 0.5},
}

func profileFor(kind taskKind) taskProfile {
	if p, ok := taskProfiles[kind]; ok {
		return p
	}
	return taskProfile{maxTokens: 500, temperature: 0.7}
}

// Prompt sizing defaults, interpolated into the instruction text so the model
// target-sizes its output.
const (
	DefaultMainConcepts   = 3
	DefaultNodeCount      = 10
	DefaultMinPathSteps   = 5
	DefaultMaxPathSteps   = 7
	DefaultMaxLinks       = 3
	DefaultRetrievalTopK  = 10
	TitleRetrievalTopK    = 3
	PathRetrievalTopK     = 15
	graphRetrievalQuery   = "Key information for building a knowledge graph"
	titleRetrievalQuery   = "Summarize the main ideas of the document in a short title."
	summaryRetrievalQuery = "Document summary"
)

// promptParams carries the per-call parameters a template may interpolate.
type promptParams struct {
	MainConcepts int
	NodeCount    int
	Concept      string
	Question     string
	MinSteps     int
	MaxSteps     int
}

// serializeContext renders a retrieval result into the deterministic textual
// form embedded verbatim in every prompt.
func serializeContext(rr domain.RetrievalResult) string {
	payload, err := json.MarshalIndent(rr, "", "  ")
	if err != nil {
		// RetrievalResult contains only strings and floats; this cannot fail.
		return "{}"
	}
	return string(payload)
}

// buildPrompt renders the instruction string for one task kind. Every prompt
// states the assistant's role, embeds the serialized retrieval context inside
// a delimited block, and closes with an explicit output contract.
func buildPrompt(kind taskKind, p promptParams, context string) string {
	switch kind {
	case taskGraph:
		return buildGraphPrompt(p, context)
	case taskTitle:
		return fmt.Sprintf("Generate a title based on the provided document excerpts. "+
			"It should be short and descriptive:\n\"\"\"%s\"\"\"\nReturn only the plain-text title.", context)
	case taskChat:
		return fmt.Sprintf("You are a helpful assistant. Using the excerpts below, answer: %q\n"+
			"\"\"\"%s\"\"\"\nReturn only the plain-text answer.", p.Question, context)
	case taskGreeting:
		return fmt.Sprintf("You are a friendly assistant. Using the excerpts below, greet the user, "+
			"give a brief summary of their document, and invite questions.\n"+
			"\"\"\"%s\"\"\"\nReturn only the plain-text greeting.", context)
	case taskConcept:
		return fmt.Sprintf("You are an expert on the subject of %q.\n"+
			"Using the following document excerpts obtained via semantic search:\n\"\"\"%s\"\"\"\n"+
			"Write a markdown-formatted, detailed summary that relates the concept to the user's document "+
			"(use headings, bold, and blank lines). If the excerpts contain no specific information about "+
			"the concept, say so briefly and summarize the concept on its own.\n"+
			"Return only the markdown summary, no JSON, no code fences.", p.Concept, context)
	case taskSearchQuery:
		return fmt.Sprintf("Derive one short web search query (3-6 words) for finding learning material "+
			"about %q in the context of the document excerpts below.\n\"\"\"%s\"\"\"\n"+
			"Return only the query text, nothing else.", p.Concept, context)
	case taskStudyPath:
		return fmt.Sprintf("You are a senior educator. Break the complex concept %q into an ordered "+
			"learning path of %d-%d concise steps.\n"+
			"Each step must have:\n"+
			"- \"title\": a short step name\n"+
			"- \"summary\": at most 120 words\n"+
			"Return ONLY JSON of the exact shape:\n"+
			"{ \"steps\": [ { \"title\": \"...\", \"summary\": \"...\" } ] }\n\n"+
			"Context:\n\"\"\"%s\"\"\"", p.Concept, p.MinSteps, p.MaxSteps, context)
	default:
		return context
	}
}

func buildGraphPrompt(p promptParams, context string) string {
	mainConcepts := p.MainConcepts
	if mainConcepts <= 0 {
		mainConcepts = DefaultMainConcepts
	}
	nodeCount := p.NodeCount
	if nodeCount <= 0 {
		nodeCount = DefaultNodeCount
	}

	return fmt.Sprintf(`You are an expert at extracting structured, factual key topics and relationships from unstructured text.
Below are document excerpts retrieved via semantic search based on the uploaded document:
"""%s"""
Using the context of these excerpts, identify the actual topics, entities, and details present in the document. Do not use generic placeholders like "main concepts" or "semantic search". Instead, generate nodes that reflect real topics found in the text.
Generate a JSON object representing a knowledge graph with two keys: "nodes" and "links".

Nodes:
- Each node must include:
  - "id": a concise title reflecting an actual concept or topic from the text.
  - "size": one of "large", "medium", or "small" ("large" for a central topic, "medium" for an important sub-topic, "small" for a detail).
  - "ring": an integer (0 for primary topics, 1 for secondary topics, 2 for detailed aspects).
  - "description": a brief summary derived from the document excerpts.
- Identify up to %d primary topics as central nodes.
- The total number of nodes should be around %d.

Links:
- Each link should be an object with { "source": id, "target": id } representing the relationship between topics.
- Ensure the graph reflects logical relationships derived from the content.

Return only the JSON object.`, context, mainConcepts, nodeCount)
}
