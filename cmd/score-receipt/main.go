package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gin-gonic/gin/binding"

	"github.com/ajharbinger/receipt-processor/internal/logger"
	"github.com/ajharbinger/receipt-processor/internal/models"
	"github.com/ajharbinger/receipt-processor/internal/scoring"
)

func main() {
	file := flag.String("file", "", "Receipt JSON file (reads stdin when empty)")
	asJSON := flag.Bool("json", false, "Print the score breakdown as JSON")
	verbose := flag.Bool("v", false, "Log each rule evaluation")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-file receipt.json] [-json] [-v]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	in := io.Reader(os.Stdin)
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", *file, err)
		}
		defer f.Close()
		in = f
	}

	var payload models.ReceiptPayload
	if err := json.NewDecoder(in).Decode(&payload); err != nil {
		log.Fatalf("The receipt is invalid: %v", err)
	}
	if err := binding.Validator.ValidateStruct(&payload); err != nil {
		log.Fatalf("The receipt is invalid: %v", err)
	}
	receipt, err := payload.ToReceipt()
	if err != nil {
		log.Fatalf("The receipt is invalid: %v", err)
	}

	appLogger := logger.NewNop()
	if *verbose {
		appLogger, err = logger.New("development", "debug")
		if err != nil {
			log.Fatal("Failed to initialize logger:", err)
		}
		defer appLogger.Sync()
	}

	result := scoring.NewEngine(appLogger).Score(receipt)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatal("Failed to encode result:", err)
		}
		return
	}

	fmt.Printf("Receipt from %q\n", receipt.Retailer)
	fmt.Println("----------------------------------------")
	for _, detail := range result.Breakdown {
		mark := " "
		if detail.Triggered {
			mark = "+"
		}
		fmt.Printf("%s %-28s %4d  %s\n", mark, detail.Rule, detail.Points, detail.Description)
	}
	fmt.Println("----------------------------------------")
	fmt.Printf("  %-28s %4d\n", "total", result.Points)
}
