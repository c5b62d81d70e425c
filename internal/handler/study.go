package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lexibot/internal/domain"
	"lexibot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStudy starts (or restarts) a study session
func (h *Handler) handleStudy(c tele.Context) error {
	userID := c.Sender().ID

	languageID, err := h.userService.GetLanguage(userID)
	if err != nil {
		h.logger.Error("Failed to get user language", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send("Произошла ошибка. Попробуйте позже.")
	}
	if languageID == 0 {
		return h.handleLanguageMenu(c)
	}

	view, err := h.studyService.StartSession(userID, languageID, h.studyService.DefaultFilters())
	if err != nil {
		h.logger.Error("Failed to start study session", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send("Произошла ошибка. Попробуйте позже.")
	}

	return h.renderView(c, view)
}

// handleCancel abandons the active session
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	h.studyService.CancelSession(userID)

	return c.Send("🏠 Главное меню\n\nВыберите действие:", mainMenuMarkup())
}

func (h *Handler) handleKnow(c tele.Context) error {
	return h.handleAction(c, service.Action{Kind: service.ActionKnow})
}

func (h *Handler) handleShowWord(c tele.Context) error {
	return h.handleAction(c, service.Action{Kind: service.ActionReveal, Hint: domain.HintWord})
}

func (h *Handler) handleShowTranscription(c tele.Context) error {
	return h.handleAction(c, service.Action{Kind: service.ActionReveal, Hint: domain.HintTranscription})
}

func (h *Handler) handleRetract(c tele.Context) error {
	return h.handleAction(c, service.Action{Kind: service.ActionRetract})
}

func (h *Handler) handleNext(c tele.Context) error {
	return h.handleAction(c, service.Action{Kind: service.ActionNext})
}

// handleSkip excludes the word from future sessions, then advances
func (h *Handler) handleSkip(c tele.Context) error {
	userID := c.Sender().ID

	wordID, err := parseID(callbackArg(c, 1))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Кнопка устарела"})
	}

	if err := h.studyService.SkipWord(userID, wordID); err != nil {
		h.logger.Error("Failed to skip word",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("word_id", wordID),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка. Попробуйте ещё раз."})
	}

	return h.handleAction(c, service.Action{Kind: service.ActionNext})
}

// handleAction feeds a session action into the study service and renders
// the resulting view
func (h *Handler) handleAction(c tele.Context, action service.Action) error {
	userID := c.Sender().ID
	sessionID := callbackArg(c, 0)

	wordID, err := parseID(callbackArg(c, 1))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Кнопка устарела"})
	}

	view, err := h.studyService.Apply(userID, sessionID, wordID, action)
	if errors.Is(err, service.ErrNoSession) {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Нет активной сессии. Отправь /study",
			ShowAlert: true,
		})
	}
	if err != nil {
		h.logger.Error("Failed to apply study action",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("action", string(action.Kind)),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка. Попробуйте ещё раз."})
	}

	if view.Rejected {
		// stale button: acknowledge and re-present the current word
		if err := c.Respond(&tele.CallbackResponse{Text: "Кнопка устарела"}); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}

	return h.renderView(c, view)
}

// renderView turns a session view into a message with the keyboard for
// the current phase
func (h *Handler) renderView(c tele.Context, view service.SessionView) error {
	text, markup := composeView(view)

	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if strings.Contains(err.Error(), "message is not modified") {
				return c.Respond()
			}
			h.logger.Warn("Failed to edit message, sending new",
				zap.Error(err),
				zap.Int64("user_id", c.Sender().ID),
			)
			if ackErr := c.Respond(); ackErr != nil {
				h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}

func composeView(view service.SessionView) (string, *tele.ReplyMarkup) {
	markup := &tele.ReplyMarkup{}

	if view.Phase == domain.PhaseCompleted {
		text := fmt.Sprintf(
			"🎉 Слова закончились!\n\nПройдено слов: %d\nЗагружено партий: %d",
			view.Counters.WordsProcessed,
			view.Counters.BatchesLoaded,
		)
		markup.Inline(
			markup.Row(btnRestart),
			markup.Row(btnLanguageMenu),
		)
		return text, markup
	}

	word := view.Word
	args := []string{view.SessionID, formatID(word.ID)}

	switch view.Phase {
	case domain.PhaseStudying:
		text := fmt.Sprintf("📖 Слово №%d\n\n🔄 %s\n\nЗнаешь это слово?", word.Number, word.Translation)
		rows := []tele.Row{
			markup.Row(markup.Data(btnKnow.Text, btnKnow.Unique, args...)),
			markup.Row(markup.Data(btnShowWord.Text, btnShowWord.Unique, args...)),
		}
		if word.Transcription != "" {
			rows = append(rows, markup.Row(markup.Data(btnShowTranscription.Text, btnShowTranscription.Unique, args...)))
		}
		markup.Inline(rows...)
		return text, markup

	case domain.PhaseConfirming:
		text := fmt.Sprintf("🔄 %s\n\n✅ Отмечено как знакомое.", word.Translation)
		markup.Inline(
			markup.Row(markup.Data(btnRetract.Text, btnRetract.Unique, args...)),
			markup.Row(markup.Data(btnNext.Text, btnNext.Unique, args...)),
		)
		return text, markup

	default: // PhaseViewingDetails
		lines := []string{fmt.Sprintf("🔄 %s", word.Translation)}
		if view.WordShown {
			lines = append(lines, fmt.Sprintf("📝 %s", word.Foreign))
		}
		if word.Transcription != "" && (view.WordShown || hasHint(view, domain.HintTranscription)) {
			lines = append(lines, fmt.Sprintf("🔊 [%s]", word.Transcription))
		}
		text := strings.Join(lines, "\n")

		rows := []tele.Row{}
		if !view.WordShown {
			rows = append(rows, markup.Row(markup.Data(btnShowWord.Text, btnShowWord.Unique, args...)))
		}
		rows = append(rows,
			markup.Row(markup.Data(btnSkip.Text, btnSkip.Unique, args...)),
			markup.Row(markup.Data(btnNext.Text, btnNext.Unique, args...)),
		)
		markup.Inline(rows...)
		return text, markup
	}
}

func hasHint(view service.SessionView, hint domain.HintType) bool {
	for _, h := range view.HintsRevealed {
		if h == hint {
			return true
		}
	}
	return false
}

// callbackArg returns the i-th "|"-separated argument of the callback data
func callbackArg(c tele.Context, i int) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	parts := strings.Split(strings.TrimSpace(cb.Data), "|")
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
