package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"wcl_attendance/internal/app"
	"wcl_attendance/internal/attendance"
	"wcl_attendance/internal/bigquery"
	"wcl_attendance/internal/export"
	"wcl_attendance/internal/processing"
	"wcl_attendance/internal/publish"
	"wcl_attendance/internal/raids"
	"wcl_attendance/internal/sheets"
	"wcl_attendance/internal/wcl"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	// Parse command line flags
	raidSet := flag.String("raids", "", "Predefined raid set to analyze (see -list-raids)")
	zoneList := flag.String("zones", "", "Comma-separated zone IDs to analyze (overrides -raids)")
	days := flag.Int("days", 30, "Number of days to analyze")
	output := flag.String("output", "raid_attendance_report.csv", "Output CSV filename")
	guildID := flag.Int("guild-id", 0, "Guild ID (overrides GUILD_ID environment variable)")
	membersOnly := flag.Bool("guild-members-only", false, "Only include guild members (excludes PUGs)")
	listRaids := flag.Bool("list-raids", false, "List all available raids and raid sets, then exit")
	flag.Parse()

	catalog := raids.NewCatalog()

	if *listRaids {
		printKnownRaids(catalog)
		return
	}

	log.Info().
		Int("days", *days).
		Bool("guild_members_only", *membersOnly).
		Msg("Starting raid attendance report generator")

	// Load configuration
	config, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if *guildID != 0 {
		config.GuildID = *guildID
	}
	if config.GuildID == 0 {
		log.Fatal().Msg("Guild ID is required: set GUILD_ID or pass -guild-id")
	}

	zones, err := resolveZones(catalog, *raidSet, *zoneList)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve requested raids")
	}

	ctx := context.Background()

	// Initialize clients
	var wclClient wcl.WCLAPI = wcl.NewClient(ctx, config)
	writer := export.NewCSVWriter()

	processor := processing.NewReportProcessor(wclClient, writer, catalog, config)

	if config.SpreadsheetID != "" {
		sheetsClient, err := sheets.NewClient(ctx, config.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create sheets client")
		}
		processor.WithSheetsPublisher(sheets.NewAttendanceManager(sheetsClient, config.SpreadsheetID))
	}

	if config.BigQueryProject != "" && config.BigQueryDataset != "" && config.BigQueryTable != "" {
		exporter, err := bigquery.NewExporter(ctx, config.BigQueryProject, config.BigQueryDataset, config.BigQueryTable)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create BigQuery exporter")
		}
		defer exporter.Close()
		processor.WithHistoryExporter(exporter)
	}

	if config.PublishURL != "" {
		publisher := publish.NewSSHPublisher(config.PublishURL)
		defer publisher.Disconnect()
		processor.WithArtifactPublisher(publisher)
	}

	query := processing.ReportQuery{
		GuildID:     config.GuildID,
		Zones:       zones,
		Days:        *days,
		MembersOnly: *membersOnly,
		OutputPath:  *output,
	}

	if err := processor.GenerateReport(ctx, query); err != nil {
		log.Fatal().Err(err).Msg("Failed to generate attendance report")
	}
}

// resolveZones turns the -raids / -zones flags into a concrete zone list.
// Explicit zone ids take priority; with neither flag set, the default is
// the 40-man raid set.
func resolveZones(catalog *raids.Catalog, raidSet, zoneList string) ([]attendance.ZoneID, error) {
	if zoneList != "" {
		var zones []attendance.ZoneID
		for _, field := range strings.Split(zoneList, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("invalid zone id %q: %w", field, err)
			}
			zones = append(zones, attendance.ZoneID(id))
		}
		if err := catalog.ValidateZones(zones); err != nil {
			return nil, err
		}
		return zones, nil
	}

	if raidSet != "" {
		return catalog.Resolve(raidSet)
	}

	return catalog.Resolve("40man")
}

// printKnownRaids lists all available raids and raid sets on stdout
func printKnownRaids(catalog *raids.Catalog) {
	fmt.Println("Available raids:")
	for _, zone := range catalog.Zones() {
		fmt.Printf("  %4d: %s\n", int(zone), catalog.ZoneName(zone))
	}

	fmt.Println("\nAvailable raid sets:")
	for _, name := range catalog.SetNames() {
		fmt.Printf("  %s:\n", name)
		for _, zone := range catalog.SetZones(name) {
			fmt.Printf("    - %s\n", catalog.ZoneName(zone))
		}
	}
}
