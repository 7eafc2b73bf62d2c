package eot

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/hahuaz/eot/date"
)

/*
	{
	    "data": {
	        "symbol": "ACME",
	        "last_price": 101.5,
	        "daily_change": 0.012
	    }
	}
*/
const quoteAPI = "https://fintables.com/api/symbols/"

// fintablesQuote fetches the live price of one symbol. The feed sometimes
// serializes prices as localized strings, so both forms are accepted.
func fintablesQuote(client *http.Client, symbol string) (float64, error) {
	var jobj any
	if err := jwget(client, quoteAPI+symbol, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("error retrieving %q: %w", symbol, err)
	}
	jval, err := jsonpath.Get("$.data.last_price", jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing quote for %q: %w", symbol, err)
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		sval, ok := jval.(string)
		if !ok {
			return math.NaN(), fmt.Errorf("quote for %q is neither a float nor a string: %v", symbol, jval)
		}
		// Turkish locale: dot for thousands, comma for decimals.
		sval = strings.ReplaceAll(sval, ".", "")
		sval = strings.ReplaceAll(sval, ",", ".")
		val, err = strconv.ParseFloat(sval, 64)
		if err != nil {
			return math.NaN(), fmt.Errorf("quote for %q is an invalid string %q: %w", symbol, sval, err)
		}
	}
	if val == 0 {
		return math.NaN(), fmt.Errorf("empty quote for %q", symbol)
	}
	return val, nil
}

// UpdateDynamicInfo refreshes the live price of every symbol in a region's
// dynamic data file. Symbols that fail to resolve keep their previous price;
// the first write error aborts.
func UpdateDynamicInfo(dataPath string, region Region) error {
	info, err := LoadDynamicInfo(dataPath, region)
	if err != nil {
		return err
	}
	client := daily()
	for symbol, entry := range info {
		price, err := fintablesQuote(client, symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "keeping previous price for %s: %v\n", symbol, err)
			continue
		}
		entry.Price = price
		info[symbol] = entry
	}
	path := filepath.Join(dataPath, "stocks-dynamic", string(region)+".json")
	content, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}

// basketSymbols are the daily series the returns calculator tracks.
var basketSymbols = []string{"USDTRY", "EURTRY", "BGP", "GOLD"}

// UpdateDailySeries appends today's close to every basket series file,
// replacing today's row when the update runs more than once a day.
func UpdateDailySeries(dataPath string) error {
	client := daily()
	today := date.Today()
	for _, symbol := range basketSymbols {
		h, err := LoadDailySeries(dataPath, symbol)
		if err != nil {
			return err
		}
		price, err := fintablesQuote(client, symbol)
		if err != nil {
			return err
		}
		h.Append(today, price)
		if err := writeDailySeries(dataPath, symbol, h); err != nil {
			return err
		}
	}
	return nil
}

func writeDailySeries(dataPath, symbol string, h *date.History[float64]) error {
	path := filepath.Join(dataPath, "daily", symbol+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not write daily file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "value"}); err != nil {
		return err
	}
	for day, v := range h.Values() {
		if err := w.Write([]string{day.String(), strconv.FormatFloat(v, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
