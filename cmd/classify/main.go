package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/guyhitalk/educapp-backend/internal/guardrails"
	"github.com/guyhitalk/educapp-backend/internal/worldview"
	"github.com/joho/godotenv"
)

// Rule debugging tool: prints the classification for a question without
// touching the model or the knowledge bases.
func main() {
	question := flag.String("question", "", "The question to classify")

	flag.Parse()

	if *question == "" {
		log.Fatal("Please provide a question using -question")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	foundation, err := worldview.LoadOrDefault(os.Getenv("WORLDVIEW_CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	classifier := guardrails.NewClassifier(foundation)
	result := classifier.Check(*question)

	fmt.Printf("Question: %s\n", *question)
	if result.TopicArea != "" {
		fmt.Printf("Topic area: %s\n", result.TopicArea)
	} else {
		fmt.Println("Topic area: none")
	}
	fmt.Printf("Needs parent discussion: %t\n", result.NeedsParentDiscussion)
	if len(result.DetectedTopics) > 0 {
		fmt.Printf("Detected keywords: %s\n", strings.Join(result.DetectedTopics, ", "))
	}
}
