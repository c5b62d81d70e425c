package handler

import (
	"lexibot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	userService  *service.UserService
	studyService *service.StudyService
	logger       *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	userService *service.UserService,
	studyService *service.StudyService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		userService:  userService,
		studyService: studyService,
		logger:       logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/study", h.handleStudy)
	h.bot.Handle("/language", h.handleLanguageMenu)
	h.bot.Handle("/cancel", h.handleCancel)

	// Static menu buttons
	h.bot.Handle(&btnStudy, h.handleStudy)
	h.bot.Handle(&btnLanguageMenu, h.handleLanguageMenu)
	h.bot.Handle(&btnRestart, h.handleStudy)

	// Study session buttons (dynamic data: session ID and word ID)
	h.bot.Handle(&btnKnow, h.handleKnow)
	h.bot.Handle(&btnShowWord, h.handleShowWord)
	h.bot.Handle(&btnShowTranscription, h.handleShowTranscription)
	h.bot.Handle(&btnRetract, h.handleRetract)
	h.bot.Handle(&btnNext, h.handleNext)
	h.bot.Handle(&btnSkip, h.handleSkip)

	// Language selection buttons
	h.bot.Handle(&btnLanguage, h.handleLanguageSelect)
}

// Notify delivers a plain message to a user, used by the reminder job
func (h *Handler) Notify(userID int64, text string) error {
	_, err := h.bot.Send(tele.ChatID(userID), text)
	return err
}

// Inline keyboard buttons. Dynamic ones get their data per message.
var (
	btnStudy        = tele.Btn{Unique: "study", Text: "📚 Учить слова"}
	btnLanguageMenu = tele.Btn{Unique: "language_menu", Text: "🌍 Выбрать язык"}
	btnRestart      = tele.Btn{Unique: "study_restart", Text: "🔄 Начать заново"}

	btnKnow              = tele.Btn{Unique: "study_know", Text: "✅ Знаю"}
	btnShowWord          = tele.Btn{Unique: "study_show", Text: "👀 Показать слово"}
	btnShowTranscription = tele.Btn{Unique: "study_tr", Text: "🔊 Транскрипция"}
	btnRetract           = tele.Btn{Unique: "study_no", Text: "❌ Всё-таки не знаю"}
	btnNext              = tele.Btn{Unique: "study_next", Text: "➡️ Дальше"}
	btnSkip              = tele.Btn{Unique: "study_skip", Text: "🚫 Больше не показывать"}

	btnLanguage = tele.Btn{Unique: "set_language"}
)

// supported study languages; word lists are seeded per language ID
var languages = []struct {
	ID   int64
	Name string
}{
	{1, "🇬🇧 Английский"},
	{2, "🇳🇱 Нидерландский"},
	{3, "🇩🇪 Немецкий"},
}

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnStudy),
		menu.Row(btnLanguageMenu),
	)
	return menu
}

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	return c.Send(
		"🏠 Главное меню\n\nВыберите действие:",
		mainMenuMarkup(),
	)
}

// handleLanguageMenu shows the language choice keyboard
func (h *Handler) handleLanguageMenu(c tele.Context) error {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(languages))
	for _, lang := range languages {
		rows = append(rows, markup.Row(markup.Data(lang.Name, btnLanguage.Unique, formatID(lang.ID))))
	}
	markup.Inline(rows...)

	if c.Callback() != nil {
		if err := c.Edit("🌍 Какой язык учим?", markup); err != nil {
			return c.Send("🌍 Какой язык учим?", markup)
		}
		return c.Respond()
	}
	return c.Send("🌍 Какой язык учим?", markup)
}

// handleLanguageSelect stores the chosen language
func (h *Handler) handleLanguageSelect(c tele.Context) error {
	userID := c.Sender().ID

	languageID, err := parseID(callbackArg(c, 0))
	if err != nil {
		h.logger.Warn("Bad language callback", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: "Неверный выбор"})
	}

	if err := h.userService.SetLanguage(userID, languageID); err != nil {
		h.logger.Error("Failed to set language", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка. Попробуйте позже."})
	}

	h.logger.Info("Language selected",
		zap.Int64("user_id", userID),
		zap.Int64("language_id", languageID),
	)

	if err := c.Edit("✅ Язык выбран!\n\nОтправь /study, чтобы начать учить слова.", mainMenuMarkup()); err != nil {
		return c.Send("✅ Язык выбран!\n\nОтправь /study, чтобы начать учить слова.", mainMenuMarkup())
	}
	return c.Respond()
}
