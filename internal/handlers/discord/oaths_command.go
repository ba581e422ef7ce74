package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ashveil/oathsandashes/internal/repositories/stats"
	"github.com/ashveil/oathsandashes/internal/services/narration"
	"github.com/ashveil/oathsandashes/internal/services/session"
	"github.com/bwmarrin/discordgo"
)

// OathsCommand handles the /oaths command
type OathsCommand struct {
	BaseCommand
	sessionService session.Service
	narrator       narration.Service
}

// NewOathsCommand creates a new oaths command handler
func NewOathsCommand(sessionService session.Service, narrator narration.Service) *OathsCommand {
	return &OathsCommand{
		BaseCommand: BaseCommand{
			Name:        "oaths",
			Description: "Oaths & Ashes game commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Open the Archive and gather souls",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join",
					Description: "Bind your fate to the game in this channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "flee",
					Description: "Leave the game",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "players",
					Description: "Show who still draws breath",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stats",
					Description: "Show your chronicle across all games",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leaderboard",
					Description: "Show the Hall of Sovereigns",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "abandon",
					Description: "Snuff out the game in this channel",
				},
			},
		},
		sessionService: sessionService,
		narrator:       narrator,
	}
}

// Handle processes a Discord interaction for the oaths command
func (c *OathsCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	channelID := i.ChannelID
	userID := interactionUserID(i)
	username := interactionUserName(i)

	var err error
	switch data.Options[0].Name {
	case "start":
		err = c.handleStart(s, i, channelID, userID, username)
	case "join":
		err = c.handleJoin(s, i, channelID, userID, username)
	case "flee":
		err = c.handleFlee(s, i, channelID, userID)
	case "players":
		err = c.handlePlayers(s, i, channelID)
	case "stats":
		err = c.handleStats(s, i, userID)
	case "leaderboard":
		err = c.handleLeaderboard(s, i)
	case "abandon":
		err = c.handleAbandon(s, i, channelID)
	default:
		err = errors.New("unknown subcommand")
	}

	return err
}

// handleStart handles the start subcommand
func (c *OathsCommand) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate, channelID, userID, username string) error {
	ctx := context.Background()

	_, err := c.sessionService.CreateSession(ctx, &session.CreateSessionInput{
		RoomID:      channelID,
		CreatorID:   userID,
		CreatorName: username,
	})
	if err != nil {
		if errors.Is(err, session.ErrSessionActive) {
			return RespondWithError(s, i, "A game already burns in this channel. Use `/oaths abandon` to snuff it out first.")
		}
		log.Printf("Error creating session: %v", err)
		return RespondWithError(s, i, fmt.Sprintf("Failed to start the game: %v", err))
	}

	return RespondWithEphemeralMessage(s, i, "The Archive opens. Your name is already written.")
}

// handleJoin handles the join subcommand
func (c *OathsCommand) handleJoin(s *discordgo.Session, i *discordgo.InteractionCreate, channelID, userID, username string) error {
	ctx := context.Background()

	output, err := c.sessionService.JoinSession(ctx, &session.JoinSessionInput{
		RoomID:          channelID,
		ParticipantID:   userID,
		ParticipantName: username,
	})
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return RespondWithEphemeralMessage(s, i, "No game waits in this channel. Use `/oaths start` to open the Archive.")
		}
		if errors.Is(err, session.ErrInvalidPhase) {
			return RespondWithEphemeralMessage(s, i, "The lobby has closed. The living must settle this among themselves.")
		}
		log.Printf("Error joining session: %v", err)
		return RespondWithError(s, i, fmt.Sprintf("Failed to join: %v", err))
	}

	if output.AlreadyJoined {
		return RespondWithEphemeralMessage(s, i, "Your name is already written.")
	}

	return RespondWithEphemeralMessage(s, i, "Your fate is bound.")
}

// handleFlee handles the flee subcommand
func (c *OathsCommand) handleFlee(s *discordgo.Session, i *discordgo.InteractionCreate, channelID, userID string) error {
	ctx := context.Background()

	output, err := c.sessionService.LeaveSession(ctx, &session.LeaveSessionInput{
		RoomID:        channelID,
		ParticipantID: userID,
	})
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) || errors.Is(err, session.ErrParticipantNotFound) {
			return RespondWithEphemeralMessage(s, i, "You hold no place here.")
		}
		log.Printf("Error leaving session: %v", err)
		return RespondWithError(s, i, fmt.Sprintf("Failed to leave: %v", err))
	}

	if output.SelfEliminated {
		return RespondWithEphemeralMessage(s, i, "You chose the quiet way out. The game remembers.")
	}

	return RespondWithEphemeralMessage(s, i, "You slip back into the shadows.")
}

// handlePlayers handles the players subcommand
func (c *OathsCommand) handlePlayers(s *discordgo.Session, i *discordgo.InteractionCreate, channelID string) error {
	ctx := context.Background()

	output, err := c.sessionService.GetRoster(ctx, &session.GetRosterInput{
		RoomID: channelID,
	})
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return RespondWithEphemeralMessage(s, i, "No game waits in this channel.")
		}
		log.Printf("Error getting roster: %v", err)
		return RespondWithError(s, i, fmt.Sprintf("Failed to read the roster: %v", err))
	}

	if len(output.Entries) == 0 {
		return RespondWithEphemeralMessage(s, i, "The Archive is empty.")
	}

	var b strings.Builder
	for _, entry := range output.Entries {
		icon := "🟢"
		status := fmt.Sprintf("%d HP", entry.Vitality)
		if !entry.Alive {
			icon = "⚫"
			status = "ASH"
		}
		fmt.Fprintf(&b, "%s %s: %s\n", icon, entry.Name, status)
	}

	title := fmt.Sprintf("The Roster, Round %d", output.Round)
	if output.Phase.IsLobby() {
		title = "The Roster: The Archive gathers"
	}

	return RespondWithEmbed(s, i, title, b.String(), nil)
}

// handleStats handles the stats subcommand
func (c *OathsCommand) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	ctx := context.Background()

	output, err := c.sessionService.GetStatsSummary(ctx, &session.GetStatsSummaryInput{
		PlayerID: userID,
	})
	if err != nil {
		if errors.Is(err, stats.ErrStatsNotFound) {
			return RespondWithEphemeralMessage(s, i, "The chronicle does not know your name yet.")
		}
		log.Printf("Error getting stats: %v", err)
		return RespondWithError(s, i, fmt.Sprintf("Failed to read the chronicle: %v", err))
	}

	card, err := c.narrator.RenderStats(ctx, &narration.RenderStatsInput{
		Stats: output.Stats,
	})
	if err != nil {
		log.Printf("Error rendering stats: %v", err)
		return RespondWithError(s, i, fmt.Sprintf("Failed to render the chronicle: %v", err))
	}

	return RespondWithMessage(s, i, card.Message)
}

// handleLeaderboard handles the leaderboard subcommand
func (c *OathsCommand) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	output, err := c.sessionService.GetLeaderboard(ctx, &session.GetLeaderboardInput{})
	if err != nil {
		log.Printf("Error getting leaderboard: %v", err)
		return RespondWithError(s, i, fmt.Sprintf("Failed to read the hall: %v", err))
	}

	rows := make([]narration.LeaderboardRow, 0, len(output.Entries))
	for _, entry := range output.Entries {
		rows = append(rows, narration.LeaderboardRow{
			Name: entry.Name,
			Wins: entry.Wins,
		})
	}

	board, err := c.narrator.RenderLeaderboard(ctx, &narration.RenderLeaderboardInput{
		Rows: rows,
	})
	if err != nil {
		log.Printf("Error rendering leaderboard: %v", err)
		return RespondWithError(s, i, fmt.Sprintf("Failed to render the hall: %v", err))
	}

	return RespondWithMessage(s, i, board.Message)
}

// handleAbandon handles the abandon subcommand
func (c *OathsCommand) handleAbandon(s *discordgo.Session, i *discordgo.InteractionCreate, channelID string) error {
	ctx := context.Background()

	_, err := c.sessionService.AbandonSession(ctx, &session.AbandonSessionInput{
		RoomID: channelID,
	})
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return RespondWithEphemeralMessage(s, i, "There is nothing here to snuff out.")
		}
		log.Printf("Error abandoning session: %v", err)
		return RespondWithError(s, i, fmt.Sprintf("Failed to abandon: %v", err))
	}

	return RespondWithMessage(s, i, "🕯️ The candle is pinched. The game ends where it stands.")
}
