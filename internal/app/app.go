package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/telebot.v4"

	httpHandlers "github.com/IT-Nick/quizbot/internal/app/handlers/http"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/callback_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/text_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/transport"
	"github.com/IT-Nick/quizbot/internal/app/middleware"
	classesRepo "github.com/IT-Nick/quizbot/internal/domain/classes/repository"
	classesService "github.com/IT-Nick/quizbot/internal/domain/classes/service"
	docRepo "github.com/IT-Nick/quizbot/internal/domain/document/repository"
	"github.com/IT-Nick/quizbot/internal/domain/flow"
	msgRepo "github.com/IT-Nick/quizbot/internal/domain/messages/repository"
	msgService "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"github.com/IT-Nick/quizbot/internal/domain/quizgen"
	"github.com/IT-Nick/quizbot/internal/domain/report"
	resultsService "github.com/IT-Nick/quizbot/internal/domain/results/service"
	rolesRepo "github.com/IT-Nick/quizbot/internal/domain/roles/repository"
	rolesService "github.com/IT-Nick/quizbot/internal/domain/roles/service"
	testsService "github.com/IT-Nick/quizbot/internal/domain/tests/service"
	usersService "github.com/IT-Nick/quizbot/internal/domain/users/service"
	"github.com/IT-Nick/quizbot/internal/infra/config"
	"github.com/IT-Nick/quizbot/internal/infra/llm"
	"github.com/IT-Nick/quizbot/internal/infra/worker"
)

const shutdownTimeout = 10 * time.Second

type Services struct {
	userService    *usersService.UserService
	classService   *classesService.ClassService
	testService    *testsService.TestService
	resultService  *resultsService.ResultService
	reportService  *report.Service
	messageService *msgService.MessageService
	roleService    *rolesService.RoleService
}

type App struct {
	config *config.Config
	gw     docRepo.Gateway
	bot    *telebot.Bot
	server *http.Server

	generator  *quizgen.Generator
	dispatcher *worker.Dispatcher
	states     *flow.StateStore
	machine    *flow.Machine

	Services
}

// NewApp собирает приложение по конфигурации: хранилище, сервисы, бот и HTTP API
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	gw, err := OpenGateway(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	app := &App{config: cfg, gw: gw}
	if err := app.initServices(); err != nil {
		_ = gw.Close()
		return nil, err
	}

	bot, err := telebot.NewBot(telebot.Settings{
		Token:   cfg.TelegramBot.Token,
		Poller:  NewPoller(cfg),
		OnError: onBotError,
	})
	if err != nil {
		_ = gw.Close()
		return nil, fmt.Errorf("telebot.NewBot: %w", err)
	}
	app.bot = bot

	app.initMachine(transport.NewTelegram(bot))
	app.bootstrapHandlersTelegram()
	app.bootstrapHTTP()

	return app, nil
}

// Функция для инициализации сервисов и репозиториев
func (app *App) initServices() error {
	cfg := app.config

	// Инициализация репозиториев
	messageRepo, err := msgRepo.NewMessageRepository(cfg.Messages.Path)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}
	rolePermissionRepo := rolesRepo.NewRolePermissionRepository()

	app.generator = quizgen.NewGenerator(llm.New(llm.Options{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}), cfg.LLM.Timeout)

	// Инициализация сервисов
	app.userService = usersService.NewUserService(app.gw, cfg.Auth.AdminCode)
	app.classService = classesService.NewClassService(app.gw, cfg.Quiz.MinClassName, classesRepo.RandomAccessCode)
	app.testService = testsService.NewTestService(app.gw, app.generator, cfg.Quiz.MinQuestions)
	app.resultService = resultsService.NewResultService(app.gw)
	app.reportService = report.NewService(app.gw)
	app.messageService = msgService.NewMessageService(messageRepo)
	app.roleService = rolesService.NewRoleService(rolePermissionRepo)
	return nil
}

func (app *App) initMachine(tr flow.Transport) {
	cfg := app.config

	app.dispatcher = worker.New(worker.Options{
		Concurrency:  cfg.Workers.Concurrency,
		MaxAttempts:  cfg.LLM.MaxAttempts,
		RetryBackoff: cfg.LLM.RetryBackoff,
	})
	app.states = flow.NewStateStore(cfg.State.TTL)

	var hints flow.Hinter
	if cfg.LLM.HintsEnabled {
		hints = app.generator
	}

	app.machine = flow.NewMachine(flow.Deps{
		Users:     app.userService,
		Classes:   app.classService,
		Tests:     app.testService,
		Results:   app.resultService,
		Reports:   app.reportService,
		Roles:     app.roleService,
		Messages:  app.messageService,
		Jobs:      app.dispatcher,
		Hints:     hints,
		Transport: tr,
		States:    app.states,
		Settings: flow.Settings{
			MaxRequested: cfg.Quiz.MaxRequested,
			MessageLimit: cfg.Quiz.MessageLimit,
		},
	})
}

// bootstrapHandlersTelegram - регистрирует обработчики для бота
func (app *App) bootstrapHandlersTelegram() {
	app.bot.Use(middleware.Recover(func(err error, c telebot.Context) {
		slog.Error("recovered from panic in telegram handler", "error", err)
		if c.Sender() != nil {
			_ = c.Send(app.messageService.Text(msgService.GenericError))
		}
	}))
	app.bot.Use(middleware.Logger())
	app.bot.Use(middleware.DebugUserActions(app.config.TelegramBot.Debug, app.states.Describe))

	text := text_handler.NewTextHandler(app.machine).GetHandlerFunc()
	app.bot.Handle("/start", text)
	app.bot.Handle("/cancel", text)
	app.bot.Handle(telebot.OnText, text)

	app.bot.Handle(telebot.OnCallback, callback_handler.NewCallbackHandler(app.machine).GetHandlerFunc())
}

func (app *App) bootstrapHTTP() {
	app.server = &http.Server{
		Addr:              net.JoinHostPort(app.config.Server.Host, app.config.Server.Port),
		Handler:           httpHandlers.NewRouter(app.reportService, app.config.Auth.AdminCode),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Run запускает бота, HTTP API и очистку устаревших диалогов.
// Возвращается после отмены ctx и остановки всех компонентов.
func (app *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("telegram bot started", "username", app.bot.Me.Username)
		app.bot.Start()
		return nil
	})

	g.Go(func() error {
		slog.Info("http server started", "addr", app.server.Addr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		app.states.Janitor(time.Minute).Run(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return app.shutdown()
	})

	return g.Wait()
}

func (app *App) shutdown() error {
	slog.Info("shutting down")
	app.bot.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := app.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := app.dispatcher.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("dispatcher stop: %w", err))
	}
	if err := app.gw.Close(); err != nil {
		errs = append(errs, fmt.Errorf("storage close: %w", err))
	}
	return errors.Join(errs...)
}

func onBotError(err error, c telebot.Context) {
	attrs := []any{"error", err}
	if c != nil && c.Sender() != nil {
		attrs = append(attrs, "sender_id", c.Sender().ID)
	}
	slog.Error("telegram handler failed", attrs...)
}
