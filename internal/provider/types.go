package provider

// Role identifies the author of a conversation turn. The wire format
// follows the Gemini convention: the assistant side is "model".
type Role string

// Role constants for conversation turns.
const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// FunctionCall is a tool invocation requested by the model.
type FunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// FunctionResponse carries a tool execution result back to the model.
type FunctionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response,omitempty"`
}

// Part is one content part of a turn: plain text, a function call,
// or a function response. Exactly one field is set.
type Part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"function_call,omitempty"`
	FunctionResponse *FunctionResponse `json:"function_response,omitempty"`
}

// Turn is a single message unit in a conversation. Turns are treated as
// immutable once appended to a history.
type Turn struct {
	Role  Role   `json:"role"`
	Parts []Part `json:"parts"`
}

// Text returns the concatenated text of all text parts.
func (t Turn) Text() string {
	var out string
	for _, p := range t.Parts {
		out += p.Text
	}
	return out
}

// FunctionCall returns the function call carried by the first part,
// or nil if the first part is not a function call. Only the first part
// is inspected: a single tool round is processed per exchange.
func (t Turn) FunctionCall() *FunctionCall {
	if len(t.Parts) == 0 {
		return nil
	}
	return t.Parts[0].FunctionCall
}

// UserText builds a plain-text user turn.
func UserText(text string) Turn {
	return Turn{Role: RoleUser, Parts: []Part{{Text: text}}}
}

// ModelText builds a plain-text model turn.
func ModelText(text string) Turn {
	return Turn{Role: RoleModel, Parts: []Part{{Text: text}}}
}

// FunctionResultTurn builds the user-role turn that folds a tool result
// back into the conversation before the follow-up model call.
func FunctionResultTurn(name, result string) Turn {
	return Turn{
		Role: RoleUser,
		Parts: []Part{{
			FunctionResponse: &FunctionResponse{
				Name:     name,
				Response: map[string]any{"result": result},
			},
		}},
	}
}

// ToolDeclaration describes one tool the model may invoke. Parameters is
// a JSON-schema-like map, already cleaned of metadata keys the model API
// rejects. Each declaration maps to exactly one function declaration on
// the wire so tool-call dispatch stays name-based.
type ToolDeclaration struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// Usage is the token count reported by the model API after a completion.
// It is an instantaneous trigger signal, never persisted. A zero value
// means the API reported no usage metadata.
type Usage struct {
	TotalTokens int `json:"total_tokens"`
}

// GenerateRequest is the input to a Provider.Generate call.
type GenerateRequest struct {
	Contents          []Turn            `json:"contents"`
	Tools             []ToolDeclaration `json:"tools,omitempty"`
	SystemInstruction string            `json:"system_instruction,omitempty"`
}

// GenerateResponse is the output of a Provider.Generate call. Content is
// the first candidate's content; when the API returns no candidates the
// Content is an empty model turn and callers fall back locally.
type GenerateResponse struct {
	Content Turn  `json:"content"`
	Usage   Usage `json:"usage"`
}
