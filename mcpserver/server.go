// Package mcpserver exposes the assistant's tool catalog over the Model
// Context Protocol so external agent hosts can drive the same tools the
// voice pipeline uses.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/Malekse21/Senior-Voice/internal/tools"
)

const (
	serverName    = "seniorvoice-mcp-server"
	serverVersion = "1.0.0"
)

// Server wraps an MCPServer bound to the tool registry.
type Server struct {
	mcp      *server.MCPServer
	registry *tools.Registry
	log      zerolog.Logger
}

// New builds the MCP server and registers every tool.
func New(registry *tools.Registry, log zerolog.Logger) *Server {
	s := &Server{
		mcp: server.NewMCPServer(
			serverName,
			serverVersion,
			server.WithToolCapabilities(true),
		),
		registry: registry,
		log:      log.With().Str("component", "mcpserver").Logger(),
	}
	s.registerTools()
	return s
}

// ServeStdio blocks serving the stdio transport.
func (s *Server) ServeStdio() error {
	s.log.Info().Msg("starting MCP server (stdio transport)")
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.add(mcp.NewTool(tools.NameReminderManager,
		mcp.WithDescription("Create, list or delete reminders. Times are French phrases like 'dans 2 heures' or 'demain à 9h'."),
		mcp.WithString("action", mcp.Description("set, list or delete")),
		mcp.WithString("text", mcp.Description("Reminder text")),
		mcp.WithString("time", mcp.Description("Time phrase in French")),
		mcp.WithString("contact", mcp.Description("Optional related contact name")),
		mcp.WithString("id", mcp.Description("Reminder id, for delete")),
	))
	s.add(mcp.NewTool(tools.NameContactCaller,
		mcp.WithDescription("Call a stored contact by name or nickname."),
		mcp.WithString("contact_name", mcp.Required(), mcp.Description("Spoken name or nickname fragment")),
	))
	s.add(mcp.NewTool(tools.NameWhatsAppSender,
		mcp.WithDescription("Send a WhatsApp message to a stored contact."),
		mcp.WithString("contact_name", mcp.Required(), mcp.Description("Spoken name or nickname fragment")),
		mcp.WithString("message", mcp.Description("Message body")),
	))
	s.add(mcp.NewTool(tools.NameMedicationTracker,
		mcp.WithDescription("Log a medication as taken, or list due/missed medications."),
		mcp.WithString("action", mcp.Description("taken, list_due or list_missed")),
		mcp.WithString("medication_name", mcp.Description("Medication name fragment")),
	))
	s.add(mcp.NewTool(tools.NameCalendarManager,
		mcp.WithDescription("Manage medical appointments."),
		mcp.WithString("action", mcp.Description("add, list_upcoming, next or delete")),
		mcp.WithString("title", mcp.Description("Appointment title")),
		mcp.WithString("doctor", mcp.Description("Doctor name")),
		mcp.WithString("date", mcp.Description("ISO date YYYY-MM-DD")),
		mcp.WithString("time", mcp.Description("Time of day")),
		mcp.WithString("id", mcp.Description("Appointment id, for delete")),
	))
	s.add(mcp.NewTool(tools.NameWeatherFetcher,
		mcp.WithDescription("Fetch a one-line weather summary."),
		mcp.WithString("city", mcp.Description("City name, default Tunis")),
	))
	s.add(mcp.NewTool(tools.NameNewsFetcher,
		mcp.WithDescription("Fetch up to three regional news headlines."),
		mcp.WithString("category", mcp.Description("Unused, reserved")),
	))
	s.add(mcp.NewTool(tools.NameSmartHomeController,
		mcp.WithDescription("Switch a household device on or off via the configured smart-home endpoint."),
		mcp.WithString("device", mcp.Required(), mcp.Description("Device phrase in French")),
		mcp.WithString("action", mcp.Description("turn_on or turn_off")),
	))
	s.add(mcp.NewTool(tools.NameEmergencyResponder,
		mcp.WithDescription("Trigger the emergency flow: calm the user, alert the emergency contact, dial emergency services."),
		mcp.WithString("severity", mcp.Description("high or critical")),
		mcp.WithString("symptoms", mcp.Description("Reported symptoms")),
	))
	s.add(mcp.NewTool(tools.NameMemoryReader,
		mcp.WithDescription("Read a profile slice: contacts, medications, appointments or all."),
		mcp.WithString("type", mcp.Description("contacts, medications, appointments or all")),
	))
}

func (s *Server) add(tool mcp.Tool) {
	name := tool.Name
	s.mcp.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := s.registry.Execute(ctx, name, tools.Params(req.GetArguments()))
		if err != nil {
			s.log.Warn().Err(err).Str("tool", name).Msg("tool call failed")
			return mcp.NewToolResultError(err.Error()), nil
		}
		payload, err := json.Marshal(res)
		if err != nil {
			return mcp.NewToolResultError("unencodable tool result"), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	})
}
