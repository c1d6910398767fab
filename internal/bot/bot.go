package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/bradykim7/commando/internal/bot/commands"
	"github.com/bradykim7/commando/pkg/commando"
	"github.com/bradykim7/commando/pkg/commando/builtin"
	"github.com/bradykim7/commando/pkg/config"
)

// Deps는 봇이 외부에서 주입받는 구성 요소입니다
type Deps struct {
	Prefixes  commando.PrefixStore
	Localizer commando.Localizer
	Metrics   *commando.Metrics
}

// Bot은 Discord 봇을 나타냅니다
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	log     *zap.Logger
	engine  *commando.Engine

	// ctx는 Start 동안 유효하며 종료 시 진행 중인 프롬프트를 취소합니다
	ctx context.Context
}

// New는 새로운 Bot 인스턴스를 생성합니다
func New(cfg *config.Config, log *zap.Logger, deps Deps) (*Bot, error) {
	// Discord 세션 생성
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("Discord 세션 생성 오류: %w", err)
	}

	engine, err := commando.NewEngine(commando.Options{
		Prefix:            cfg.CommandPrefix,
		Owners:            cfg.Owners,
		PromptTimeout:     cfg.PromptTimeout,
		MaxPromptAttempts: cfg.PromptMaxAttempts,
		Transport:         NewTransport(session),
		Directory:         NewDirectory(session),
		Localizer:         deps.Localizer,
		Prefixes:          deps.Prefixes,
		Metrics:           deps.Metrics,
		Logger:            log,
	})
	if err != nil {
		return nil, fmt.Errorf("명령어 엔진 생성 오류: %w", err)
	}

	// 봇 인스턴스 생성
	bot := &Bot{
		session: session,
		config:  cfg,
		log:     log.Named("bot"),
		engine:  engine,
		ctx:     context.Background(),
	}

	// 명령어 등록
	if err := bot.registerCommands(); err != nil {
		return nil, err
	}

	// 이벤트 핸들러 설정
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onMessageCreate)
	session.AddHandler(bot.onInteractionCreate)

	// Intents 설정
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	return bot, nil
}

// Engine은 봇의 명령어 엔진을 반환합니다
func (b *Bot) Engine() *commando.Engine {
	return b.engine
}

// Start는 봇을 시작하고 ctx가 취소될 때까지 실행합니다
func (b *Bot) Start(ctx context.Context) error {
	b.ctx = ctx

	// Discord에 연결
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("Discord 세션 열기 오류: %w", err)
	}

	b.log.Info("봇이 실행 중입니다. 종료하려면 CTRL-C를 누르세요.")

	// 컨텍스트가 취소될 때까지 대기
	<-ctx.Done()

	// 리소스 정리
	return b.Close()
}

// Close는 리소스를 정리합니다
func (b *Bot) Close() error {
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("Discord 세션 닫기 오류: %w", err)
	}
	return nil
}

// registerCommands는 모든 명령어를 등록합니다
func (b *Bot) registerCommands() error {
	if err := builtin.Register(b.engine, b.config.HelpSimpleList); err != nil {
		return fmt.Errorf("기본 명령어 등록 오류: %w", err)
	}
	cmds, err := commands.All()
	if err != nil {
		return fmt.Errorf("명령어 생성 오류: %w", err)
	}
	if err := b.engine.Register(cmds...); err != nil {
		return fmt.Errorf("명령어 등록 오류: %w", err)
	}
	return nil
}
