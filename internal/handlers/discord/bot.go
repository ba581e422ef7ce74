package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ashveil/oathsandashes/internal/models"
	"github.com/ashveil/oathsandashes/internal/services/narration"
	"github.com/ashveil/oathsandashes/internal/services/session"
	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot instance. It doubles as the session
// service's transport: broadcasts go to the bound channel, decision
// surfaces go out as DM button menus.
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config

	sessionService session.Service
	narrator       narration.Service
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Narration service, used for command-surface rendering
	Narrator narration.Service
}

// Button IDs
const (
	ButtonCommitTrust  = "oath_trust"
	ButtonCommitBetray = "oath_betray"

	// Curse buttons carry the target's user ID after the prefix
	ButtonCursePrefix = "curse_"
)

// Discord allows at most five action rows per message
const maxComponentRows = 5

// New creates a new Discord bot. The session service is bound afterward
// via BindSessionService because the service needs the bot as its
// transport.
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.Narrator == nil {
		return nil, errors.New("narration service cannot be nil")
	}

	// Create a new Discord session
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    dg,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
		narrator:   cfg.Narrator,
	}

	// Register the interaction handler
	dg.AddHandler(bot.handleInteraction)

	return bot, nil
}

// BindSessionService attaches the session service. Must be called before
// Start.
func (b *Bot) BindSessionService(svc session.Service) {
	b.sessionService = svc
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	if b.sessionService == nil {
		return errors.New("session service not bound")
	}

	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	// Register the oaths command
	oathsCmd := NewOathsCommand(b.sessionService, b.narrator)
	if err := b.RegisterCommand(oathsCmd); err != nil {
		return fmt.Errorf("failed to register oaths command: %w", err)
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	// Remove all commands
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Printf("Failed to delete command %s (ID: %s): %v", cmdName, cmdID, err)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	guildID := b.config.GuildID
	if guildID != "" {
		log.Printf("Registering command %s for guild %s", cmd.GetName(), guildID)
	} else {
		log.Printf("Registering command %s globally", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID

	return nil
}

// ---- session.Transport ----

// Broadcast sends a public message to the bound channel
func (b *Bot) Broadcast(ctx context.Context, roomID, text string) error {
	if _, err := b.session.ChannelMessageSend(roomID, text); err != nil {
		return fmt.Errorf("failed to broadcast to %s: %w", roomID, err)
	}
	return nil
}

// SendPrivate sends a DM to one participant
func (b *Bot) SendPrivate(ctx context.Context, participantID, text string) error {
	dm, err := b.session.UserChannelCreate(participantID)
	if err != nil {
		return fmt.Errorf("failed to open DM with %s: %w", participantID, err)
	}
	if _, err := b.session.ChannelMessageSend(dm.ID, text); err != nil {
		return fmt.Errorf("failed to DM %s: %w", participantID, err)
	}
	return nil
}

// PresentChoice DMs the trust/betray button menu to a living participant
func (b *Bot) PresentChoice(ctx context.Context, participantID, prompt string, choices []models.Action) error {
	var buttons []discordgo.MessageComponent
	for _, choice := range choices {
		switch choice {
		case models.ActionTrust:
			buttons = append(buttons, discordgo.Button{
				Label:    "TRUST",
				Style:    discordgo.PrimaryButton,
				CustomID: ButtonCommitTrust,
				Emoji:    &discordgo.ComponentEmoji{Name: "🤝"},
			})
		case models.ActionBetray:
			buttons = append(buttons, discordgo.Button{
				Label:    "BETRAY",
				Style:    discordgo.DangerButton,
				CustomID: ButtonCommitBetray,
				Emoji:    &discordgo.ComponentEmoji{Name: "🗡️"},
			})
		}
	}

	return b.sendMenu(participantID, prompt, []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	})
}

// PresentCurseTargets DMs the curse menu to a dead participant, two
// targets per row
func (b *Bot) PresentCurseTargets(ctx context.Context, participantID, prompt string, targets []session.CurseTarget) error {
	var rows []discordgo.MessageComponent
	var row []discordgo.MessageComponent

	for _, target := range targets {
		row = append(row, discordgo.Button{
			Label:    fmt.Sprintf("👻 %s", target.Name),
			Style:    discordgo.SecondaryButton,
			CustomID: ButtonCursePrefix + target.ID,
		})
		if len(row) == 2 {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
		}
		if len(rows) == maxComponentRows {
			break
		}
	}
	if row != nil && len(rows) < maxComponentRows {
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}

	return b.sendMenu(participantID, prompt, rows)
}

func (b *Bot) sendMenu(participantID, prompt string, components []discordgo.MessageComponent) error {
	dm, err := b.session.UserChannelCreate(participantID)
	if err != nil {
		return fmt.Errorf("failed to open DM with %s: %w", participantID, err)
	}

	_, err = b.session.ChannelMessageSendComplex(dm.ID, &discordgo.MessageSend{
		Content:    prompt,
		Components: components,
	})
	if err != nil {
		return fmt.Errorf("failed to send menu to %s: %w", participantID, err)
	}

	return nil
}

// ---- interactions ----

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		// Handle slash commands
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Printf("Error handling command %s: %v", i.ApplicationCommandData().Name, err)
			}
		}
	case discordgo.InteractionMessageComponent:
		// Handle buttons
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Printf("Error handling component interaction: %v", err)
		}
	}
}

// handleComponentInteraction handles the DM button clicks. The buttons
// carry no room ID, so the participant's room is resolved first.
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	customID := i.MessageComponentData().CustomID
	userID := interactionUserID(i)

	resolved, err := b.sessionService.ResolveParticipantSession(ctx, &session.ResolveParticipantSessionInput{
		ParticipantID: userID,
	})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, "The moment has passed. No choice awaits you.")
	}

	switch {
	case customID == ButtonCommitTrust || customID == ButtonCommitBetray:
		action := models.ActionTrust
		if customID == ButtonCommitBetray {
			action = models.ActionBetray
		}

		_, err := b.sessionService.CommitAction(ctx, &session.CommitActionInput{
			RoomID:        resolved.RoomID,
			ParticipantID: userID,
			Action:        action,
		})
		if err != nil {
			if errors.Is(err, session.ErrAlreadyCommitted) {
				return RespondWithEphemeralMessage(s, i, "Your oath is already sealed. There is no unsaying it.")
			}
			log.Printf("Error committing action for %s: %v", userID, err)
			return RespondWithEphemeralMessage(s, i, "Your choice slipped away. The round moves on without it.")
		}

		return RespondWithEphemeralMessage(s, i, "🔒 Your oath is sealed.")

	case strings.HasPrefix(customID, ButtonCursePrefix):
		targetID := strings.TrimPrefix(customID, ButtonCursePrefix)

		output, err := b.sessionService.CastCurse(ctx, &session.CastCurseInput{
			RoomID:   resolved.RoomID,
			CasterID: userID,
			TargetID: targetID,
		})
		if err != nil {
			log.Printf("Error casting curse for %s: %v", userID, err)
			return RespondWithEphemeralMessage(s, i, "Your reach falls short of the living.")
		}

		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("👻 Your chill settles on **%s**.", output.TargetName))

	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}
}

// interactionUserID extracts the user ID from either a guild or a DM
// interaction
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// interactionUserName extracts the display name from either a guild or a
// DM interaction
func interactionUserName(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		if i.Member.Nick != "" {
			return i.Member.Nick
		}
		return i.Member.User.Username
	}
	if i.User != nil {
		return i.User.Username
	}
	return ""
}
