package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/avelkov/draft-html-converter/converter"
	"github.com/avelkov/draft-html-converter/htmlconverter"
	"github.com/avelkov/draft-html-converter/mdconverter"
)

func loadConfig(path string) (converter.Config, error) {
	if path == "" {
		return converter.Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return converter.Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg converter.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return converter.Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func printWarnings(warnings []converter.Warning) {
	for _, warning := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s (%s): %s\n", warning.Type, warning.NodeType, warning.Message)
	}
}

func contentJSON(content converter.ContentState, compact bool) ([]byte, error) {
	if compact {
		return json.Marshal(content)
	}
	return json.MarshalIndent(content, "", "  ")
}

func main() {
	reverse := flag.Bool("reverse", false, "Convert HTML to content JSON")
	markdown := flag.Bool("markdown", false, "Convert Markdown to content JSON")
	compact := flag.Bool("compact", false, "Print content JSON without indentation")
	configPath := flag.String("config", "", "Path to a JSON file with style and entity kind tables")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dhc [options] <input-file>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}
	if *reverse && *markdown {
		fmt.Fprintln(os.Stderr, "-reverse and -markdown are mutually exclusive")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *reverse:
		conv, err := htmlconverter.New(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
			os.Exit(1)
		}

		result, err := conv.Convert(string(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error converting file: %v\n", err)
			os.Exit(1)
		}
		printWarnings(result.Warnings)

		output, err := contentJSON(result.Content, *compact)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting content JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(output))

	case *markdown:
		conv, err := mdconverter.New(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
			os.Exit(1)
		}

		result, err := conv.Convert(string(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error converting file: %v\n", err)
			os.Exit(1)
		}
		printWarnings(result.Warnings)

		output, err := contentJSON(result.Content, *compact)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting content JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(output))

	default:
		conv, err := converter.New(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
			os.Exit(1)
		}

		result, err := conv.Convert(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error converting file: %v\n", err)
			os.Exit(1)
		}
		printWarnings(result.Warnings)
		fmt.Print(result.HTML)
	}
}
