package gemini

import (
	"google.golang.org/genai"

	"github.com/flemzord/walletclaw/internal/provider"
)

// toContents converts conversation turns to the wire format. Parts map
// one to one; a turn with no parts becomes a Content with no parts, which
// the API rejects, so callers are expected to send well-formed turns.
func toContents(turns []provider.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		parts := make([]*genai.Part, 0, len(t.Parts))
		for _, p := range t.Parts {
			switch {
			case p.FunctionCall != nil:
				parts = append(parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{
						Name: p.FunctionCall.Name,
						Args: p.FunctionCall.Args,
					},
				})
			case p.FunctionResponse != nil:
				parts = append(parts, &genai.Part{
					FunctionResponse: &genai.FunctionResponse{
						Name:     p.FunctionResponse.Name,
						Response: p.FunctionResponse.Response,
					},
				})
			default:
				parts = append(parts, &genai.Part{Text: p.Text})
			}
		}
		contents = append(contents, &genai.Content{
			Role:  string(t.Role),
			Parts: parts,
		})
	}
	return contents
}

// toTools converts tool declarations. Each declaration becomes one Tool
// carrying a single function declaration so tool-call dispatch stays
// name-based on both sides.
func toTools(decls []provider.ToolDeclaration) []*genai.Tool {
	if len(decls) == 0 {
		return nil
	}
	tools := make([]*genai.Tool, 0, len(decls))
	for _, d := range decls {
		fd := &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
		}
		if d.Parameters != nil {
			fd.ParametersJsonSchema = d.Parameters
		}
		tools = append(tools, &genai.Tool{
			FunctionDeclarations: []*genai.FunctionDeclaration{fd},
		})
	}
	return tools
}

// fromResponse extracts the first candidate's content and the reported
// token usage. A response with no candidates yields an empty model turn;
// missing usage metadata yields zero usage.
func fromResponse(resp *genai.GenerateContentResponse) provider.GenerateResponse {
	out := provider.GenerateResponse{
		Content: provider.Turn{Role: provider.RoleModel},
	}
	if resp == nil {
		return out
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		content := resp.Candidates[0].Content
		if content.Role != "" {
			out.Content.Role = provider.Role(content.Role)
		}
		for _, p := range content.Parts {
			if p == nil {
				continue
			}
			switch {
			case p.FunctionCall != nil:
				out.Content.Parts = append(out.Content.Parts, provider.Part{
					FunctionCall: &provider.FunctionCall{
						Name: p.FunctionCall.Name,
						Args: p.FunctionCall.Args,
					},
				})
			case p.Text != "":
				out.Content.Parts = append(out.Content.Parts, provider.Part{Text: p.Text})
			}
		}
	}

	if resp.UsageMetadata != nil {
		out.Usage = provider.Usage{TotalTokens: int(resp.UsageMetadata.TotalTokenCount)}
	}
	return out
}
