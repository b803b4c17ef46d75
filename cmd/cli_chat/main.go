package main

import (
	"bufio"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"voice-relay/internal/config"
	"voice-relay/internal/domain"
	"voice-relay/internal/llm"
	"voice-relay/internal/repository"
	"voice-relay/internal/service"
	"voice-relay/internal/speech"
)

var (
	boldGreen = color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan  = color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow    = color.New(color.FgYellow).SprintFunc()
	red       = color.New(color.FgRed).SprintFunc()
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewNop()
	if !cfg.IsProduction() {
		logger, _ = zap.NewDevelopment(zap.IncreaseLevel(zap.WarnLevel))
	}
	defer logger.Sync()

	convRepo := repository.NewMemoryConversationRepository()
	llmClient := llm.NewHTTPClient(llm.Options{
		BaseURL:  cfg.LLMBaseURL,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
		Referer:  cfg.LLMReferer,
		AppTitle: cfg.LLMAppTitle,
		Timeout:  cfg.LLMTimeout,
	}, logger)
	deepgram := speech.NewDeepgramClient(speech.Options{
		BaseURL:  cfg.DeepgramBaseURL,
		APIKey:   cfg.DeepgramAPIKey,
		STTModel: cfg.STTModel,
		TTSModel: cfg.TTSModel,
		Timeout:  cfg.SpeechTimeout,
	}, logger)

	convSvc := service.NewConversationService(convRepo)
	chatSvc := service.NewChatService(llmClient, convRepo, logger)
	speechSvc := service.NewSpeechService(deepgram, deepgram, nil, 0, logger)

	fmt.Println(boldGreen("AI Interview Bot (terminal)"))
	fmt.Printf("Modelo: %s\n", boldCyan(cfg.LLMModel))

	for {
		fmt.Println("\n===== Menu =====")
		fmt.Println("[1] Nueva conversacion")
		fmt.Println("[2] Continuar conversacion")
		fmt.Println("[3] Listar conversaciones")
		fmt.Println("[4] Salir")
		fmt.Print("Selecciona una opcion: ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		switch strings.TrimSpace(line) {
		case "1":
			conv, err := convSvc.Create(ctx, "")
			if err != nil {
				fmt.Println(red(fmt.Sprintf("error creando conversacion: %v", err)))
				continue
			}
			if err := chatFlow(ctx, reader, conv.ID, convSvc, chatSvc, speechSvc); err != nil {
				fmt.Println(red(fmt.Sprintf("error en chat: %v", err)))
			}
		case "2":
			id := readLine(reader, "ID de la conversacion: ")
			conv, err := convSvc.Get(ctx, id)
			if err != nil {
				fmt.Println(red(fmt.Sprintf("no se pudo abrir: %v", err)))
				continue
			}
			printHistory(conv)
			if err := chatFlow(ctx, reader, conv.ID, convSvc, chatSvc, speechSvc); err != nil {
				fmt.Println(red(fmt.Sprintf("error en chat: %v", err)))
			}
		case "3":
			list, _ := convSvc.List(ctx)
			if len(list) == 0 {
				fmt.Println("No hay conversaciones.")
			}
			for _, s := range list {
				fmt.Printf("[%s] %s (%d mensajes, %s)\n", s.ID, s.Title, s.MessageCount, s.CreatedAt.Format("2006-01-02 15:04"))
			}
		case "4":
			return
		default:
			fmt.Println("Opcion invalida.")
		}
	}
}

// chatFlow corre el loop de chat. Comandos: /say habla la ultima respuesta,
// /audio <archivo> transcribe un archivo y lo envia como mensaje.
func chatFlow(
	ctx context.Context,
	reader *bufio.Reader,
	convID string,
	convSvc *service.ConversationService,
	chatSvc *service.ChatService,
	speechSvc *service.SpeechService,
) error {
	fmt.Println("---- Modo Chat (escribe 'salir' para terminar, /say, /audio <archivo>) ----")
	lastReply := ""
	for {
		fmt.Print(boldGreen("Tu > "))
		text, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("leer input: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.EqualFold(text, "salir") || strings.EqualFold(text, "exit") {
			fmt.Println("Saliendo del chat...")
			return nil
		}

		if text == "/say" {
			if err := sayFlow(ctx, speechSvc, convID, lastReply); err != nil {
				fmt.Println(red(fmt.Sprintf("error sintetizando: %v", err)))
			}
			continue
		}
		if strings.HasPrefix(text, "/audio ") {
			transcript, err := transcribeFile(ctx, speechSvc, strings.TrimSpace(strings.TrimPrefix(text, "/audio ")))
			if err != nil {
				fmt.Println(red(fmt.Sprintf("error transcribiendo: %v", err)))
				continue
			}
			fmt.Printf("%s %s\n", yellow("(transcripcion)"), transcript)
			text = transcript
		}

		if _, err := convSvc.AddMessage(ctx, convID, domain.RoleUser, text); err != nil {
			fmt.Println(red(fmt.Sprintf("error guardando mensaje de usuario: %v", err)))
			continue
		}

		reply, err := chatSvc.Reply(ctx, service.ChatInput{ConversationID: convID})
		if err != nil {
			var upstream *llm.UpstreamError
			if errors.As(err, &upstream) {
				fmt.Println(red(fmt.Sprintf("%s: %s", upstream.Error(), upstream.Body)))
			} else {
				fmt.Println(red(fmt.Sprintf("error generando respuesta: %v", err)))
			}
			continue
		}
		if _, err := convSvc.AddMessage(ctx, convID, domain.RoleAssistant, reply); err != nil {
			fmt.Println(red(fmt.Sprintf("error guardando respuesta: %v", err)))
		}
		lastReply = reply
		fmt.Printf("%s %s\n", boldCyan("Candidato >"), reply)
	}
}

func sayFlow(ctx context.Context, speechSvc *service.SpeechService, convID, text string) error {
	if text == "" {
		return errors.New("todavia no hay respuesta para leer")
	}
	encoded, err := speechSvc.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	audio, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decode audio: %w", err)
	}
	name := "reply-" + convID + ".mp3"
	if err := os.WriteFile(name, audio, 0o644); err != nil {
		return fmt.Errorf("write audio: %w", err)
	}
	fmt.Printf("%s %s (%d bytes)\n", yellow("audio guardado en"), name, len(audio))
	return nil
}

func transcribeFile(ctx context.Context, speechSvc *service.SpeechService, path string) (string, error) {
	audio, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}
	return speechSvc.Transcribe(ctx, audio, mime.TypeByExtension(filepath.Ext(path)))
}

func printHistory(conv domain.Conversation) {
	fmt.Printf("--- %s ---\n", conv.Title)
	for _, m := range conv.Messages {
		label := boldGreen("Tu >")
		if m.Role == domain.RoleAssistant {
			label = boldCyan("Candidato >")
		}
		fmt.Printf("%s %s\n", label, m.Content)
	}
}

func readLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
