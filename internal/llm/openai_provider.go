package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Conceptual-Machines/grammar-school-go/gs"
	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

const (
	// Role constants
	userRole      = "user"
	developerRole = "developer"
	systemRole    = "system"

	// Reasoning effort levels
	reasoningMinimal = "minimal"
	reasoningLow     = "low"
	reasoningMedium  = "medium"
	reasoningHigh    = "high"

	providerNameOpenAI = "openai"
	customToolCallType = "custom_tool_call"

	openAIResponsesURL = "https://api.openai.com/v1/responses"

	// DefaultOpenAIModel is used when OpenAI serves a request that names no model.
	DefaultOpenAIModel = "gpt-5-mini"

	maxPreviewChars = 200
)

// OpenAIProvider implements the Provider interface using OpenAI's Responses API
type OpenAIProvider struct {
	client       *openai.Client
	apiKey       string // Store API key for raw HTTP requests when needed
	httpClient   *http.Client
	responsesURL string
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{
		client:       &client,
		apiKey:       apiKey,
		httpClient:   http.DefaultClient,
		responsesURL: openAIResponsesURL,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return providerNameOpenAI
}

// Generate implements non-streaming generation using OpenAI's Responses API.
// With a CFG grammar the request goes out as raw HTTP, since the SDK has no
// custom tool type.
func (p *OpenAIProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()
	log.Printf("🎵 OPENAI PROGRESSION REQUEST STARTED (Model: %s)", request.Model)

	transaction := sentry.StartTransaction(ctx, "openai.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameOpenAI)
	transaction.SetTag("cfg_enabled", fmt.Sprintf("%t", request.CFGGrammar != nil))

	params := p.buildRequestParams(request)

	span := transaction.StartChild("openai.api_call")
	apiStartTime := time.Now()

	var (
		response *GenerationResponse
		err      error
	)
	if request.CFGGrammar != nil {
		response, err = p.executeRawCFGRequest(transaction.Context(), params, request.CFGGrammar)
	} else {
		response, err = p.executeSDKRequest(transaction.Context(), params)
	}
	span.Finish()

	if err != nil {
		log.Printf("❌ OPENAI REQUEST FAILED after %v: %v", time.Since(apiStartTime), err)
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	p.logUsageStats(response.Usage)
	transaction.SetTag("success", "true")
	log.Printf("✅ OPENAI GENERATION COMPLETED in %v", time.Since(startTime))
	return response, nil
}

// executeSDKRequest sends a plain-text request through the SDK.
func (p *OpenAIProvider) executeSDKRequest(ctx context.Context, params responses.ResponseNewParams) (*GenerationResponse, error) {
	resp, err := p.client.Responses.New(ctx, params)
	if err != nil {
		return nil, err
	}

	textOutput := cleanTextOutput(resp.OutputText())
	log.Printf("📥 OPENAI RESPONSE: output_length=%d, output_items=%d", len(textOutput), len(resp.Output))
	if textOutput == "" {
		return nil, fmt.Errorf("openai response did not include any output text")
	}

	return &GenerationResponse{
		RawOutput: textOutput,
		Usage: Usage{
			InputTokens:     int(resp.Usage.InputTokens),
			OutputTokens:    int(resp.Usage.OutputTokens),
			ReasoningTokens: int(resp.Usage.OutputTokensDetails.ReasoningTokens),
			TotalTokens:     int(resp.Usage.TotalTokens),
		},
	}, nil
}

// executeRawCFGRequest handles CFG grammar requests via raw HTTP
func (p *OpenAIProvider) executeRawCFGRequest(
	ctx context.Context,
	params responses.ResponseNewParams,
	cfgGrammar *CFGConfig,
) (*GenerationResponse, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	var paramsMap map[string]any
	if err := json.Unmarshal(paramsJSON, &paramsMap); err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	p.addCFGToolToParams(paramsMap, cfgGrammar)

	body, err := p.makeRawHTTPRequest(ctx, paramsMap)
	if err != nil {
		return nil, err
	}

	var rawResponse map[string]any
	if err := json.Unmarshal(body, &rawResponse); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	output := p.extractToolInput(rawResponse, cfgGrammar.ToolName)
	if output == "" {
		return nil, fmt.Errorf("model did not call the %s tool", cfgGrammar.ToolName)
	}

	return &GenerationResponse{
		RawOutput: output,
		Usage:     usageFromRawResponse(rawResponse),
	}, nil
}

// addCFGToolToParams adds CFG tool configuration to request params
func (p *OpenAIProvider) addCFGToolToParams(paramsMap map[string]any, cfgGrammar *CFGConfig) {
	cfgTool := gs.BuildOpenAICFGTool(gs.CFGConfig{
		ToolName:    cfgGrammar.ToolName,
		Description: cfgGrammar.Description,
		Grammar:     gs.CleanGrammarForCFG(cfgGrammar.Grammar),
		Syntax:      cfgGrammar.Syntax,
	})
	log.Printf("🔧 CFG GRAMMAR CONFIGURED: %s (syntax: %s)", cfgGrammar.ToolName, cfgGrammar.Syntax)

	// Set text format to plain text when using CFG
	paramsMap["text"] = gs.GetOpenAITextFormatForCFG()

	tools, _ := paramsMap["tools"].([]any)
	paramsMap["tools"] = append(tools, cfgTool)
	paramsMap["parallel_tool_calls"] = false
}

// makeRawHTTPRequest sends raw HTTP request to OpenAI
func (p *OpenAIProvider) makeRawHTTPRequest(ctx context.Context, paramsMap map[string]any) ([]byte, error) {
	payload, err := json.Marshal(paramsMap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	log.Printf("📤 Making raw HTTP request (JSON size: %d bytes)", len(payload))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.responsesURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := httpResp.Body.Close(); closeErr != nil {
			log.Printf("⚠️  Failed to close response body: %v", closeErr)
		}
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error %d: %s", httpResp.StatusCode, truncate(string(body), maxPreviewChars))
	}

	return body, nil
}

// extractToolInput returns the input of the first custom tool call named toolName.
func (p *OpenAIProvider) extractToolInput(rawResponse map[string]any, toolName string) string {
	output, ok := rawResponse["output"].([]any)
	if !ok {
		log.Printf("⚠️  No output array found in raw response")
		return ""
	}

	for _, item := range output {
		itemMap, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if itemType, _ := itemMap["type"].(string); itemType != customToolCallType {
			continue
		}
		if name, _ := itemMap["name"].(string); name != "" && name != toolName {
			continue
		}
		if input, ok := itemMap["input"].(string); ok && strings.TrimSpace(input) != "" {
			log.Printf("✅ Found %s output: %s", toolName, truncate(input, maxPreviewChars))
			return strings.TrimSpace(input)
		}
	}

	return ""
}

// buildRequestParams converts GenerationRequest to OpenAI-specific ResponseNewParams
func (p *OpenAIProvider) buildRequestParams(request *GenerationRequest) responses.ResponseNewParams {
	inputItems := responses.ResponseInputParam{}

	for _, item := range request.InputArray {
		role, hasRole := item["role"].(string)
		content, hasContent := item["content"].(string)

		if !hasRole || !hasContent {
			log.Printf("⚠️  Skipping invalid input item (missing role or content): %v", item)
			continue
		}

		var roleEnum responses.EasyInputMessageRole
		switch role {
		case developerRole, systemRole:
			roleEnum = responses.EasyInputMessageRoleDeveloper
		default:
			roleEnum = responses.EasyInputMessageRoleUser
		}

		inputItems = append(inputItems,
			responses.ResponseInputItemParamOfMessage(content, roleEnum),
		)
	}

	params := responses.ResponseNewParams{
		Model: request.Model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: inputItems,
		},
	}
	if request.SystemPrompt != "" {
		params.Instructions = openai.String(request.SystemPrompt)
	}

	// Only GPT-5 models accept a reasoning parameter
	if strings.HasPrefix(request.Model, "gpt-5") {
		params.Reasoning = shared.ReasoningParam{
			Effort: reasoningEffort(request.ReasoningMode),
		}
	}

	return params
}

// reasoningEffort maps a reasoning mode onto the API enum. A short chord list
// needs little thought, so the default is low.
func reasoningEffort(mode string) shared.ReasoningEffort {
	switch mode {
	case reasoningMinimal:
		return shared.ReasoningEffort(reasoningMinimal)
	case reasoningMedium:
		return responses.ReasoningEffortMedium
	case reasoningHigh:
		return responses.ReasoningEffortHigh
	case reasoningLow:
		return responses.ReasoningEffortLow
	default:
		return responses.ReasoningEffortLow
	}
}

// usageFromRawResponse reads token usage from a raw JSON response
func usageFromRawResponse(rawResponse map[string]any) Usage {
	usageMap, ok := rawResponse["usage"].(map[string]any)
	if !ok {
		return Usage{}
	}
	usage := Usage{
		InputTokens:  intField(usageMap, "input_tokens"),
		OutputTokens: intField(usageMap, "output_tokens"),
		TotalTokens:  intField(usageMap, "total_tokens"),
	}
	if details, ok := usageMap["output_tokens_details"].(map[string]any); ok {
		usage.ReasoningTokens = intField(details, "reasoning_tokens")
	}
	return usage
}

func intField(m map[string]any, key string) int {
	if v, ok := m[key].(float64); ok {
		return int(v)
	}
	return 0
}

// logUsageStats logs token usage statistics
func (p *OpenAIProvider) logUsageStats(usage Usage) {
	log.Printf("📊 USAGE: input=%d, output=%d, reasoning=%d, total=%d",
		usage.InputTokens, usage.OutputTokens, usage.ReasoningTokens, usage.TotalTokens)
}

// cleanTextOutput strips markdown code fences around a text answer
func cleanTextOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```text")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// truncate truncates a string to maxLen characters
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
