package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kpauljoseph/neurocards/pkg/logger"
	"github.com/kpauljoseph/neurocards/pkg/models"
	"github.com/kpauljoseph/neurocards/pkg/utils"
	"github.com/kpauljoseph/neurocards/pkg/version"
)

const (
	DefaultAnkiConnectURL = "http://localhost:8765"
	NeuroCardsModelName   = "NeuroCards"
	MaxRetries            = 3
	RetryDelay            = 500 * time.Millisecond
)

type Service struct {
	ankiConnectURL string
	client         *http.Client
	retryDelay     time.Duration
	logger         *logger.Logger
}

type Option func(*Service)

func WithURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.ankiConnectURL = url
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.client = client
	}
}

func WithRetryDelay(d time.Duration) Option {
	return func(s *Service) {
		s.retryDelay = d
	}
}

// apiError is an error reported by AnkiConnect itself. Resending the same
// request gives the same answer, so it is never retried.
type apiError struct {
	msg string
}

func (e *apiError) Error() string {
	return "anki error: " + e.msg
}

func isDuplicateNote(err error) bool {
	var apiErr *apiError
	return errors.As(err, &apiErr) && strings.Contains(apiErr.msg, "duplicate")
}

type AnkiConnectRequest struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params"`
}

type Note struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
	Options   map[string]any    `json:"options"`
	Tags      []string          `json:"tags"`
}

func NewService(logger *logger.Logger, options ...Option) *Service {
	s := &Service{
		ankiConnectURL: DefaultAnkiConnectURL,
		client:         &http.Client{Timeout: 10 * time.Second},
		retryDelay:     RetryDelay,
		logger:         logger,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *Service) CheckConnection(ctx context.Context) error {
	request := AnkiConnectRequest{
		Action:  "version",
		Version: ANKI_CONNECT_VERSION,
		Params:  map[string]any{},
	}

	_, err := s.sendRequest(ctx, request)
	if err != nil {
		s.logger.Info("Error sending request to Anki: %v", err)
		return fmt.Errorf("could not connect to Anki. Please ensure:\n" +
			"1. Anki is running https://apps.ankiweb.net/#download\n" +
			"2. AnkiConnect add-on is installed (code: 2055492159) https://ankiweb.net/shared/info/2055492159\n" +
			"3. Anki has been restarted after installing AnkiConnect")
	}

	return nil
}

func (s *Service) CreateDeck(ctx context.Context, deckName string) error {
	s.logger.Info("Creating deck: %s", deckName)
	request := AnkiConnectRequest{
		Action:  "createDeck",
		Version: ANKI_CONNECT_VERSION,
		Params: map[string]string{
			"deck": deckName,
		},
	}

	_, err := s.sendRequest(ctx, request)
	return err
}

func (s *Service) ensureModelExists(ctx context.Context) error {
	request := AnkiConnectRequest{
		Action:  "modelNames",
		Version: ANKI_CONNECT_VERSION,
		Params:  map[string]any{},
	}

	result, err := s.sendRequest(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to get models: %w", err)
	}

	var modelNames []string
	if err := json.Unmarshal(result, &modelNames); err != nil {
		return fmt.Errorf("failed to parse model names: %w", err)
	}

	for _, name := range modelNames {
		if name == NeuroCardsModelName {
			s.logger.Debug("NeuroCards model already exists")
			return nil
		}
	}

	createRequest := AnkiConnectRequest{
		Action:  "createModel",
		Version: ANKI_CONNECT_VERSION,
		Params: map[string]any{
			"modelName":     NeuroCardsModelName,
			"inOrderFields": []string{"Front", "Back", "Hash"},
			"css": `.card {
                font-family: arial;
                font-size: 24px;
                text-align: center;
                color: black;
                background-color: white;
            }
            .hash { display: none; }`,
			"cardTemplates": []map[string]any{
				{
					"Name": "Card 1",
					"Front": `{{Front}}
                        <div class="hash">{{Hash}}</div>`,
					"Back": `{{FrontSide}}
                        <hr id="answer">
                        {{Back}}`,
				},
			},
		},
	}

	if _, err := s.sendRequest(ctx, createRequest); err != nil {
		return fmt.Errorf("failed to create model: %w", err)
	}

	s.logger.Info("Created NeuroCards model")
	return nil
}

func (s *Service) findExistingNoteByHash(ctx context.Context, hash string) (int, error) {
	request := AnkiConnectRequest{
		Action:  "findNotes",
		Version: ANKI_CONNECT_VERSION,
		Params: map[string]any{
			"query": fmt.Sprintf("Hash:%s", hash),
		},
	}

	result, err := s.sendRequest(ctx, request)
	if err != nil {
		return 0, fmt.Errorf("failed to search notes: %w", err)
	}

	var noteIds []int
	if err := json.Unmarshal(result, &noteIds); err != nil {
		return 0, fmt.Errorf("failed to parse note IDs: %w", err)
	}

	if len(noteIds) > 0 {
		return noteIds[0], nil
	}
	return 0, nil
}

// AddCard adds one card to deckName. It returns false without error when a
// note with the same content hash already exists, or when Anki refuses the
// note as a duplicate of another note's front.
func (s *Service) AddCard(ctx context.Context, deckName string, card models.Card) (bool, error) {
	hash := utils.CardHash(card)
	s.logger.Debug("Processing card %q for deck %s (hash %s)", card.Front, deckName, hash)

	existingNoteId, err := s.findExistingNoteByHash(ctx, hash)
	if err != nil {
		s.logger.Debug("Warning: failed to check for existing note: %v", err)
	} else if existingNoteId != 0 {
		s.logger.Info("Skipping duplicate card with hash: %s", hash)
		return false, nil
	}

	note := Note{
		DeckName:  deckName,
		ModelName: NeuroCardsModelName,
		Fields: map[string]string{
			"Front": card.Front,
			"Back":  card.Back,
			"Hash":  hash,
		},
		Options: map[string]any{
			"allowDuplicate": false,
		},
		Tags: []string{"neurocards", getDeckNameUnderscoreSeparatedForTag(deckName)},
	}

	request := AnkiConnectRequest{
		Action:  "addNote",
		Version: ANKI_CONNECT_VERSION,
		Params: map[string]any{
			"note": note,
		},
	}

	if _, err := s.sendRequest(ctx, request); err != nil {
		if isDuplicateNote(err) {
			s.logger.Info("Skipping card %q: Anki already has a note with this front", card.Front)
			return false, nil
		}
		return false, fmt.Errorf("failed to add note: %w", err)
	}

	s.logger.Debug("Successfully added card with hash: %s", hash)
	return true, nil
}

// AddAllCards pushes a deck, recording every outcome in report.
func (s *Service) AddAllCards(ctx context.Context, deckName string, cards []models.Card, report *SyncReport) error {
	if err := s.ensureModelExists(ctx); err != nil {
		return fmt.Errorf("failed to ensure model exists: %w", err)
	}

	report.DeckName = deckName
	report.TotalCards += len(cards)

	var failCount int
	for _, card := range cards {
		if err := ctx.Err(); err != nil {
			return err
		}

		added, err := s.AddCard(ctx, deckName, card)
		if err != nil {
			s.logger.Debug("Error adding card: %v", err)
			failCount++
			report.FailedCount++
			continue
		}
		if !added {
			report.SkippedCount++
			report.SkippedCards = append(report.SkippedCards, SkippedCard{
				DeckName: deckName,
				Front:    card.Front,
				Hash:     utils.CardHash(card),
			})
			continue
		}
		report.AddedCount++
	}

	if failCount > 0 {
		return fmt.Errorf("failed to add %d out of %d cards", failCount, len(cards))
	}

	s.logger.Debug("Successfully added %d cards", report.AddedCount)
	return nil
}

// SyncDeck checks the connection, creates the deck and pushes every card.
// The report is returned even when some cards failed.
func (s *Service) SyncDeck(ctx context.Context, deckName string, cards []models.Card) (*SyncReport, error) {
	report := &SyncReport{DeckName: deckName, StartTime: time.Now()}
	defer func() { report.EndTime = time.Now() }()

	if err := s.CheckConnection(ctx); err != nil {
		return report, err
	}
	if err := s.CreateDeck(ctx, deckName); err != nil {
		return report, fmt.Errorf("failed to create deck %s: %w", deckName, err)
	}
	if err := s.AddAllCards(ctx, deckName, cards, report); err != nil {
		return report, err
	}
	return report, nil
}

func (s *Service) sendRequest(ctx context.Context, req AnkiConnectRequest) (json.RawMessage, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		if attempt > 0 {
			s.logger.Info("Retrying request (attempt %d/%d)...", attempt+1, MaxRetries)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retryDelay):
			}
		}

		result, err := s.post(ctx, reqBody)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var apiErr *apiError
		if errors.As(err, &apiErr) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("after %d attempts: %w", MaxRetries, lastErr)
}

func (s *Service) post(ctx context.Context, body []byte) (json.RawMessage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.ankiConnectURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", version.UserAgent())

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result struct {
		Error  *string         `json:"error"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if result.Error != nil {
		return nil, &apiError{msg: *result.Error}
	}

	return result.Result, nil
}

func getDeckNameUnderscoreSeparatedForTag(deckName string) string {
	return strings.ReplaceAll(strings.TrimSpace(deckName), " ", "_")
}
