package gemini

import (
	"fmt"

	genai "google.golang.org/genai"

	"chronolink/internal/history"
)

func stringProp() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func objectSchema(required []string, props map[string]*genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func jsonConfig(schema *genai.Schema) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
}

// SummariesPayload asks for the tier-1 primary/related summary pair for a
// time query. When the city predates settlement, the model is steered to the
// local creation myth instead of the literal topic.
func SummariesPayload(q history.TimeQuery) Payload {
	prompt := fmt.Sprintf(`You are a historian and cultural storyteller. The user is asking about "%s" in %s, %s during the year %d. First, determine if "%s" existed as a significant settlement in that year. - IF IT DID EXIST: Your primary summary will be about "%s" in %s, %s during %d. - IF IT DID NOT EXIST: Your primary summary will be a retelling of a prominent creation myth from the major indigenous or tribal group that historically inhabited the geographical area of modern-day %s, %s. State the name of the tribe. The summary should be respectful and engaging. Ignore the original topic. Second, provide a high-level summary for a historically related event or a neighboring group that provides context. For the creation myth, this could be about a neighboring tribe's story. Format your response as a valid JSON object with keys "primary" and "related".`,
		q.Topic, q.City, q.Country, q.Year, q.City, q.Topic, q.City, q.Country, q.Year, q.City, q.Country)
	schema := objectSchema([]string{"primary", "related"}, map[string]*genai.Schema{
		"primary": stringProp(),
		"related": stringProp(),
	})
	return Payload{Prompt: prompt, Config: jsonConfig(schema)}
}

// InDepthPayload asks for the tier-2 report on a time query.
func InDepthPayload(q history.TimeQuery) Payload {
	prompt := fmt.Sprintf(`You are a historical and cultural analyst writing a comprehensive report based on the user's query about "%s" in %s, %s during the year %d. First, determine if "%s" existed as a significant settlement in that year. - IF IT DID EXIST: Write a detailed report on "%s" in that location and time. Cover: key figures, socio-political context, opposing views, and immediate consequences. - IF IT DID NOT EXIST: Provide a deeper analysis of the creation myth for the indigenous people of that geographical area. Your report should cover: "keyFigures" (deities/mythological beings), "socioPoliticalContext" (the cultural values and worldview the myth establishes), "opposingViews" (any conflicting forces or dualities within the myth), and "immediateConsequences" (the result of the myth's main events, i.e., the creation of the world, humans, etc.). Respond as a valid JSON object with keys: "keyFigures", "socioPoliticalContext", "opposingViews", "immediateConsequences".`,
		q.Topic, q.City, q.Country, q.Year, q.City, q.Topic)
	schema := objectSchema(
		[]string{"keyFigures", "socioPoliticalContext", "opposingViews", "immediateConsequences"},
		map[string]*genai.Schema{
			"keyFigures":            stringProp(),
			"socioPoliticalContext": stringProp(),
			"opposingViews":         stringProp(),
			"immediateConsequences": stringProp(),
		})
	return Payload{Prompt: prompt, Config: jsonConfig(schema)}
}

// TimelinePayload asks for the tier-3 timeline around a time query.
func TimelinePayload(q history.TimeQuery) Payload {
	prompt := fmt.Sprintf(`You are a historical and cultural archivist. The user is interested in the year %d in the area of modern-day %s, %s regarding "%s". First, determine if "%s" existed as a significant settlement in %d. - IF IT DID EXIST: The main event is "%s" in %s, %s during %d. Create a timeline with 3 significant preceding and 3 significant succeeding events related to this. - IF IT DID NOT EXIST: The "main event" is the creation myth of the indigenous people in that geographical area. Create a narrative timeline of the key events *within the creation myth itself*. Structure this with 'preceding' events (what existed before creation), the 'main' event (the act of creation), and 'succeeding' events (the immediate aftermath, like the creation of humans or animals). For each of the total events, provide a short, interesting detail. Return the data as a valid JSON array of objects with keys: "year" (use descriptive terms like "Primordial Time" for the myth), "event", "type", and an optional "interestingDetail".`,
		q.Year, q.City, q.Country, q.Topic, q.City, q.Year, q.Topic, q.City, q.Country, q.Year)
	item := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"year":              stringProp(),
			"event":             stringProp(),
			"type":              {Type: genai.TypeString, Enum: []string{"preceding", "main", "succeeding"}},
			"interestingDetail": stringProp(),
		},
		Required: []string{"year", "event", "type"},
	}
	schema := &genai.Schema{Type: genai.TypeArray, Items: item}
	return Payload{Prompt: prompt, Config: jsonConfig(schema)}
}

// ClassifyPayload asks whether a search term names a person or a topic. The
// reply is the bare word, no schema.
func ClassifyPayload(term string) Payload {
	return Payload{Prompt: fmt.Sprintf(`Is the following search term more likely a specific person's name or a general topic/event? Respond with only the word "person" or "topic". Term: "%s"`, term)}
}

// TopicSummaryPayload asks for the free-tier topic summary as plain text.
func TopicSummaryPayload(term string) Payload {
	return Payload{Prompt: fmt.Sprintf(`Provide a concise, one-paragraph summary of the historical topic: "%s". This should serve as an outline for a book report.`, term)}
}

// PersonSummaryPayload asks for the tier-1 biography outline.
func PersonSummaryPayload(term string) Payload {
	prompt := fmt.Sprintf(`You are a biographer creating an outline for a book report on "%s". Provide a general overview, a summary of immediate family, and list three key life events. Respond as a single JSON object with keys "overview", "family", and "keyEvents".`, term)
	schema := objectSchema([]string{"overview", "family", "keyEvents"}, map[string]*genai.Schema{
		"overview":  stringProp(),
		"family":    stringProp(),
		"keyEvents": stringProp(),
	})
	return Payload{Prompt: prompt, Config: jsonConfig(schema)}
}

// PersonInDepthPayload asks for the tier-2 person report.
func PersonInDepthPayload(term string) Payload {
	prompt := fmt.Sprintf(`You are a historical analyst writing a comprehensive report on "%s". Provide an in-depth report covering these areas: 1. **friendsAndAssociates**: Notable friends and associates. 2. **influencesAndMentors**: Major influences and mentors. 3. **achievements**: Significant achievements over time. 4. **funnyAnecdotes**: Known funny anecdotes. 5. **embarrassingStories**: Known embarrassing stories. 6. **conspiracyTheories**: Any conspiracy theories associated with them. 7. **enemies**: Known enemies or rivals. 8. **notableQuotes**: Famous or interesting quotes attributed to them. 9. **contextualAnalysis**: Expand the picture. How did they influence related events or people? Connect them to the world around them. If information for a field is not available, return an empty string. Respond as a single JSON object.`, term)
	fields := []string{
		"friendsAndAssociates", "influencesAndMentors", "achievements",
		"funnyAnecdotes", "embarrassingStories", "conspiracyTheories",
		"enemies", "notableQuotes", "contextualAnalysis",
	}
	props := make(map[string]*genai.Schema, len(fields))
	for _, f := range fields {
		props[f] = stringProp()
	}
	return Payload{Prompt: prompt, Config: jsonConfig(objectSchema(fields, props))}
}

// SixDegreesPayload asks for the tier-3 causal chain starting from the
// person's most consequential action.
func SixDegreesPayload(term string) Payload {
	prompt := fmt.Sprintf(`You are a historian specializing in causality and long-term consequences, tracing "Echoes Through History". Start with a significant decision, action, or influence by "%s". Then, create a causal chain of 4 to 6 steps showing how that initial action led to a significant, and perhaps unexpected, future event or outcome many years or decades later. Each step in the chain should be a clear "cause and effect" link to the previous one. For each step, provide a title for the event/action, the year it occurred, and a description of its consequence that leads to the next step. Return this as a valid JSON array of objects. Each object must have keys: "year", "title", and "consequence". The first object in the array should be the initial action by "%s".`, term, term)
	item := objectSchema([]string{"year", "title", "consequence"}, map[string]*genai.Schema{
		"year":        stringProp(),
		"title":       stringProp(),
		"consequence": stringProp(),
	})
	schema := &genai.Schema{Type: genai.TypeArray, Items: item}
	return Payload{Prompt: prompt, Config: jsonConfig(schema)}
}

// FamilyTreePayload asks for the tier-4 family tree. The schema is unrolled
// to two nested generations so the response type stays acyclic.
func FamilyTreePayload(term string) Payload {
	leaf := objectSchema([]string{"name", "relation"}, map[string]*genai.Schema{
		"name":     stringProp(),
		"relation": stringProp(),
	})
	parent := objectSchema([]string{"name", "relation"}, map[string]*genai.Schema{
		"name":     stringProp(),
		"relation": stringProp(),
		"children": {Type: genai.TypeArray, Items: leaf},
	})
	root := objectSchema([]string{"name", "relation"}, map[string]*genai.Schema{
		"name":     stringProp(),
		"relation": stringProp(),
		"children": {Type: genai.TypeArray, Items: parent},
	})
	prompt := fmt.Sprintf(`Generate a family tree for "%s". The structure must be a nested JSON object. The root object represents "%s" and should have the relation "Self". Each object must have "name", "relation", and an optional "children" array of similar objects. CRITICAL: To prevent a stack overflow error, the nesting depth of the tree MUST be strictly limited. Include only immediate parents, spouse(s), and children. You may include grandparents and grandchildren, but go no further than one generation up from parents and one generation down from children.`, term, term)
	return Payload{Prompt: prompt, Config: jsonConfig(root)}
}

// ImagePayloadForTime builds the image prompt for a time query.
func ImagePayloadForTime(q history.TimeQuery) Payload {
	return Payload{Prompt: fmt.Sprintf(`You are an AI artist creating a historical image based on this user request: Topic is "%s" in %s, %s during the year %d. First, silently determine if the city "%s" was an established settlement in that year. - If it was, generate an artistic, photorealistic image representing the topic in that city and era. The style should be reminiscent of photography from that time. Dramatic lighting, detailed. - If the city did not exist, generate an artistic, historically respectful image representing a key scene from the creation myth of the major indigenous people who inhabited the geographical area of modern-day %s. State the name of the tribe in your internal reasoning. The style should be like a detailed, respectful historical or mythological painting. Based on your choice, your prompt for the image generator is:`,
		q.Topic, q.City, q.Country, q.Year, q.City, q.City)}
}

// ImagePayloadForTerm builds the portrait prompt for a search query.
func ImagePayloadForTerm(term string) Payload {
	return Payload{Prompt: fmt.Sprintf(`An artistic, photorealistic portrait of %s. The style should be appropriate to their historical era. Detailed, high quality.`, term)}
}
