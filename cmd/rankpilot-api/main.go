package main

import (
	"context"
	"log"
	"net/http"

	"github.com/rankpilot/rankpilot/internal/adapters/gemini"
	httpadapter "github.com/rankpilot/rankpilot/internal/adapters/http"
	memstore "github.com/rankpilot/rankpilot/internal/adapters/storage/memory"
	"github.com/rankpilot/rankpilot/internal/app/assistant"
	"github.com/rankpilot/rankpilot/internal/app/chat"
	"github.com/rankpilot/rankpilot/internal/config"
	"github.com/rankpilot/rankpilot/internal/domain"
	"github.com/rankpilot/rankpilot/internal/prompt"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// Choose between mock and the real Gemini API by ENV (useful for dev).
	var (
		gateway domain.ModelGateway
		err     error
	)

	if cfg.UseMockGateway {
		log.Println("[GATEWAY] Using MOCK model gateway")
		gateway = gemini.NewMock()
	} else {
		log.Println("[GATEWAY] Using Gemini model gateway")
		gateway, err = gemini.NewClient(ctx, gemini.Config{
			APIKey:            cfg.APIKey,
			TextModel:         cfg.TextModel,
			ImageModel:        cfg.ImageModel,
			SystemInstruction: prompt.SEOPersona,
			Timeout:           cfg.RequestTimeout,
		})
		if err != nil {
			log.Fatalf("error initializing Gemini gateway: %v", err)
		}
	}

	// Conversations are in-memory for the lifetime of the process.
	convStore := memstore.NewConversationStore()
	turnStore := memstore.NewTurnStore()

	assistantSvc := assistant.NewService(gateway)
	chatSvc := chat.NewService(gateway, convStore, turnStore)

	handler := httpadapter.NewServer(assistantSvc, chatSvc)

	addr := ":" + cfg.Port
	log.Println("RankPilot API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
