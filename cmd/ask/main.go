package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/guyhitalk/educapp-backend/internal/bedrock"
	"github.com/guyhitalk/educapp-backend/internal/cache"
	"github.com/guyhitalk/educapp-backend/internal/embedding"
	"github.com/guyhitalk/educapp-backend/internal/guardrails"
	"github.com/guyhitalk/educapp-backend/internal/rag"
	"github.com/guyhitalk/educapp-backend/internal/tutor"
	"github.com/guyhitalk/educapp-backend/internal/usage"
	"github.com/guyhitalk/educapp-backend/internal/worldview"
	"github.com/joho/godotenv"
)

// One-shot CLI: runs the full pipeline for a single question without HTTP.
func main() {
	question := flag.String("question", "", "The student question")
	subject := flag.String("subject", "general", "The subject hint")
	grade := flag.String("grade", "", "Optional grade hint")
	stdin := flag.Bool("stdin", false, "Read question from stdin")

	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var finalQuestion string

	if *stdin {
		bytes, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal("Failed to read from stdin:", err)
		}
		finalQuestion = string(bytes)
	} else if *question != "" {
		finalQuestion = *question
	} else {
		log.Fatal("Please provide a question using -question or -stdin")
	}

	ctx := context.Background()

	region := os.Getenv("AWS_REGION")
	modelID := os.Getenv("CLAUDE_MODEL_ID")

	claudeClient, err := bedrock.NewClient(ctx, region, modelID)
	if err != nil {
		log.Fatal(err)
	}

	foundation, err := worldview.LoadOrDefault(os.Getenv("WORLDVIEW_CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	embedder := embedding.NewBedrockEmbedderWithModel(claudeClient.Client, os.Getenv("EMBEDDING_MODEL_ID"))
	engine := rag.NewEngine(ctx, rag.DefaultConfig(), embedder)

	service := tutor.NewService(
		claudeClient,
		engine,
		guardrails.NewClassifier(foundation),
		foundation,
		modelID,
		usage.NopTracker{},
		nopConversationStore{},
		cache.NopAnswerCache{},
	)

	response := service.Ask(ctx, tutor.AskRequest{
		Question:     finalQuestion,
		Subject:      *subject,
		StudentGrade: *grade,
	})

	fmt.Println(response.Answer)
	if response.TopicArea != "" {
		fmt.Printf("\n[topic area: %s]\n", response.TopicArea)
	}
	if response.NeedsParentDiscussion {
		fmt.Println("[needs parent discussion]")
	}
}

type nopConversationStore struct{}

func (nopConversationStore) SaveConversation(ctx context.Context, userID, question, answer, subject string) error {
	return nil
}
