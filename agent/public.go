package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/hahuaz/eot"
	"github.com/hahuaz/eot/docs"
	"github.com/hahuaz/eot/renderer"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user primarily wants to understand the inflation-adjusted performance of the stocks
			and funds he follows. Devise a plan of questions to ask each expert and come up with the
			best response to the user's request.

			Figures are fractions, not percentages: 0.05 means five percent. "N/A" means the figure
			is undefined because the underlying value was not positive; do not treat it as zero.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewMarketExpert returns the expert grounded in web search for market news.
func NewMarketExpert() *Expert {
	return &Expert{
		Name: "Market",
		Description: `This is a market expert, well aware of financial products and institutions
		and the latest news about funds and companies.
		Ask the Market expert whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in markets. You can search and find anything related to
			financial institutions, companies, markets and funds. You leverage Google Search
			to ground your assertions, and you know how to relate the latest news to the
			user's request.
				`}}},
		},
	}
}

// NewAnalyst returns the expert in charge of the derivation pipeline: it can
// produce full stock reports, the returns basket and the documentation.
func NewAnalyst(dataPath string) *Expert {
	lib := []Function{stockReportFunc(dataPath), returnsFunc(dataPath), topicFunc()}
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He derives valuation ratios and inflation-adjusted
		growth figures from the statement data of the followed stocks, and tracks the
		cumulative returns of the currency, fund and gold basket.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's followed stocks and the returns basket.
				Use the available tools to produce:
				  - a full report for one stock (statements, derived ratios, real growth)
				  - the cumulative returns of the currency, fund and gold basket
				  - the documentation explaining how figures are derived
				All growth figures the tools return are already inflation adjusted.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func okResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

func stockReportFunc(dataPath string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "StockReport",
			Description: `StockReport derives the full report of one followed stock: raw statement
			figures, valuation ratios and inflation-adjusted growth, as a markdown table set.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"symbol": {
						Type:        genai.TypeString,
						Description: "The stock symbol, as listed in the data files.",
					},
					"region": {
						Type:        genai.TypeString,
						Description: `The market region, "tr" or "us". Defaults to "tr".`,
					},
				},
				Required: []string{"symbol"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted report of the stock.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			symbol, ok := args["symbol"].(string)
			if !ok {
				return errResponse(id, "StockReport", fmt.Errorf("argument 'symbol' is not a string but %T", args["symbol"]))
			}
			region := eot.RegionTR
			if s, ok := args["region"].(string); ok {
				var err error
				if region, err = eot.ParseRegion(s); err != nil {
					return errResponse(id, "StockReport", err)
				}
			}
			report, err := stockReport(dataPath, region, symbol)
			if err != nil {
				return errResponse(id, "StockReport", err)
			}
			return okResponse(id, "StockReport", report)
		},
	}
}

func returnsFunc(dataPath string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Returns",
			Description: `Returns reports the cumulative returns of the tracked basket (USD/TRY,
			EUR/TRY, a blended currency series, a money fund net of withholding, and gold) since
			the baseline observation date, plus the fund's real TTM yield.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of cumulative returns.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			report, err := returnsReport(dataPath)
			if err != nil {
				return errResponse(id, "Returns", err)
			}
			return okResponse(id, "Returns", report)
		},
	}
}

func topicFunc() *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Topic",
			Description: `Topic returns the embedded documentation. Use "*" to get every topic.
			Available topics: metrics, returns, data.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: `The topic name, or "*" for all topics.`,
					},
				},
				Required: []string{"name"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The markdown content of the topic.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			name, ok := args["name"].(string)
			if !ok {
				return errResponse(id, "Topic", fmt.Errorf("argument 'name' is not a string but %T", args["name"]))
			}
			content, err := docs.GetTopic(name)
			if err != nil {
				return errResponse(id, "Topic", err)
			}
			return okResponse(id, "Topic", content)
		},
	}
}

// stockReport runs the full pipeline for one stock and renders it.
func stockReport(dataPath string, region eot.Region, symbol string) (string, error) {
	set, cfg, err := eot.LoadStock(dataPath, region, symbol)
	if err != nil {
		return "", err
	}
	inflation, err := eot.LoadInflation(dataPath, region)
	if err != nil {
		return "", err
	}
	dynamic, err := eot.LoadDynamicInfo(dataPath, region)
	if err != nil {
		return "", err
	}
	info, ok := dynamic[symbol]
	if !ok {
		return "", fmt.Errorf("no live data for %s in region %s", symbol, region)
	}
	analyzer, err := eot.NewAnalyzer(eot.DefaultAxis(), cfg, inflation, set)
	if err != nil {
		return "", err
	}
	if err := analyzer.Run(info.Price); err != nil {
		return "", err
	}
	return renderer.RenderStock(renderer.NewStockReport(analyzer, info)), nil
}

// returnsReport computes and renders the basket returns and the fund yield.
func returnsReport(dataPath string) (string, error) {
	basket, err := eot.LoadBasket(dataPath)
	if err != nil {
		return "", err
	}
	taxes, err := eot.TaxPolicy(eot.RegionTR)
	if err != nil {
		return "", err
	}
	cr, err := eot.ComputeReturns(basket, eot.DefaultBaseline, taxes)
	if err != nil {
		return "", err
	}
	inflation, err := eot.LoadInflation(dataPath, eot.RegionTR)
	if err != nil {
		return "", err
	}
	fundYield, err := eot.TrackedFundYield(inflation, eot.DefaultAxis())
	if err != nil {
		return "", err
	}
	return renderer.RenderReturns(renderer.NewReturnsReport(cr, fundYield)), nil
}
