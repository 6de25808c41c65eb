package commands

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

var adminPerms = int64(discordgo.PermissionAdministrator)

func GetApplicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     "set-league",
			Description:              "Set the Fantasy Critic league to track for this server",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("league-id", "Fantasy Critic league ID", true),
				intOption("year", "League year", true),
			},
		},
		{
			Name:                     "fc-login",
			Description:              "Log in to Fantasy Critic so the bot can read your league",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("email", "Fantasy Critic account email", true),
				stringOption("password", "Fantasy Critic account password", true),
			},
		},
		{
			Name:                     "start-tracking",
			Description:              "Start the scheduled league checks",
			DefaultMemberPermissions: &adminPerms,
		},
		{
			Name:                     "stop-tracking",
			Description:              "Stop the scheduled league checks",
			DefaultMemberPermissions: &adminPerms,
		},
		{
			Name:                     "follow-channel",
			Description:              "Post league updates to a channel",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("channel", "Name of the text channel", true),
			},
		},
		{
			Name:                     "unfollow-channel",
			Description:              "Stop posting league updates to a channel",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("channel", "Name of the text channel", true),
			},
		},
		{
			Name:        "tracker-status",
			Description: "Show the tracker's league, channels and schedule",
		},
		{
			Name:        "score-report",
			Description: "Show the current league standings",
		},
		{
			Name:        "publisher-report",
			Description: "Show one publisher's roster",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("publisher", "Publisher name", true),
			},
		},
		{
			Name:        "game-info",
			Description: "Look up a game in this year's master list",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("name", "Game name", true),
			},
		},
		{
			Name:                     "run-check",
			Description:              "Run a league check right now",
			DefaultMemberPermissions: &adminPerms,
		},
	}
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func intOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func RegisterCommands(session CommandSession, commands []*discordgo.ApplicationCommand, userID, guildID string) []*discordgo.ApplicationCommand {
	registered := make([]*discordgo.ApplicationCommand, len(commands))

	for i, cmd := range commands {
		result, err := session.ApplicationCommandCreate(userID, guildID, cmd)
		if err != nil {
			slog.Error("Cannot create command", "name", cmd.Name, "error", err)
			continue
		}
		registered[i] = result
		slog.Info("Registered command", "name", cmd.Name, "guild", guildID)
	}

	return registered
}

func CleanupCommands(session CommandSession, commands []*discordgo.ApplicationCommand, userID, guildID string) {
	for _, cmd := range commands {
		if cmd == nil {
			continue
		}
		if err := session.ApplicationCommandDelete(userID, guildID, cmd.ID); err != nil {
			slog.Error("Cannot delete command", "name", cmd.Name, "error", err)
		}
	}
}
