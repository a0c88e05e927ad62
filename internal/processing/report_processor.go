package processing

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"wcl_attendance/internal/app"
	"wcl_attendance/internal/attendance"
	"wcl_attendance/internal/raids"

	"github.com/rs/zerolog/log"
)

// ReportQuery describes one attendance report run
type ReportQuery struct {
	GuildID     int
	Zones       []attendance.ZoneID
	Days        int
	MembersOnly bool
	OutputPath  string
}

// ReportProcessor orchestrates one report run: fetch everything, then
// deduplicate, then aggregate, then write. The fetch phase completes before
// any processing starts; dedup needs the full log set per zone.
type ReportProcessor struct {
	wclClient WCLClientInterface
	writer    ReportWriterInterface
	catalog   *raids.Catalog
	config    *app.Config

	// Optional output targets, nil when not configured
	sheetsPublisher   SheetsPublisherInterface
	historyExporter   HistoryExporterInterface
	artifactPublisher ArtifactPublisherInterface
}

// NewReportProcessor creates a ReportProcessor with interface dependencies for testability
func NewReportProcessor(
	wclClient WCLClientInterface,
	writer ReportWriterInterface,
	catalog *raids.Catalog,
	config *app.Config,
) *ReportProcessor {
	return &ReportProcessor{
		wclClient: wclClient,
		writer:    writer,
		catalog:   catalog,
		config:    config,
	}
}

// WithSheetsPublisher enables spreadsheet publication of the report
func (rp *ReportProcessor) WithSheetsPublisher(publisher SheetsPublisherInterface) *ReportProcessor {
	rp.sheetsPublisher = publisher
	return rp
}

// WithHistoryExporter enables warehouse export of the report
func (rp *ReportProcessor) WithHistoryExporter(exporter HistoryExporterInterface) *ReportProcessor {
	rp.historyExporter = exporter
	return rp
}

// WithArtifactPublisher enables remote upload of the finished CSV
func (rp *ReportProcessor) WithArtifactPublisher(publisher ArtifactPublisherInterface) *ReportProcessor {
	rp.artifactPublisher = publisher
	return rp
}

// GenerateReport runs one full report cycle for the given query
func (rp *ReportProcessor) GenerateReport(ctx context.Context, query ReportQuery) error {
	if len(query.Zones) == 0 {
		return fmt.Errorf("no zones requested")
	}
	if err := rp.catalog.ValidateZones(query.Zones); err != nil {
		return err
	}

	rp.wclClient.ResetAPICallCount()

	zoneNames := make([]string, len(query.Zones))
	for i, zone := range query.Zones {
		zoneNames[i] = rp.catalog.ZoneName(zone)
	}

	log.Info().
		Int("guild_id", query.GuildID).
		Int("days", query.Days).
		Strs("zones", zoneNames).
		Bool("members_only", query.MembersOnly).
		Msg("Starting attendance report run")

	roster, err := rp.fetchRoster(ctx, query)
	if err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -query.Days)
	rawRaids, err := rp.wclClient.GetAttendanceSince(ctx, query.GuildID, cutoff)
	if err != nil {
		return fmt.Errorf("failed to fetch attendance data: %w", err)
	}

	logs := rp.ConvertRaidsToLogs(rawRaids, query.Zones)
	occurrences := attendance.Deduplicate(logs, rp.config.ReportLocation)
	tallies := attendance.Aggregate(occurrences, roster)
	rows := attendance.BuildReport(tallies)

	if len(occurrences) == 0 {
		log.Warn().
			Int("raw_raids", len(rawRaids)).
			Msg("No raid occurrences found for the requested zones and period; writing empty report")
	} else {
		minDate, maxDate := occurrenceDateRange(occurrences)
		log.Info().
			Int("occurrences", len(occurrences)).
			Int("players", len(rows)).
			Str("first_raid", minDate).
			Str("last_raid", maxDate).
			Msg("Aggregated raid attendance")
	}

	if err := rp.writer.WriteReport(query.OutputPath, rows); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	rp.logTopRaiders(rows)

	if err := rp.publishReport(ctx, query, rows); err != nil {
		return err
	}

	log.Info().
		Int64("api_calls", rp.wclClient.GetAPICallCount()).
		Str("output", query.OutputPath).
		Msg("Completed attendance report run")

	return nil
}

// fetchRoster loads the guild roster when member filtering is requested.
// A roster that cannot be fetched or comes back empty downgrades to an
// unfiltered run with a warning rather than aborting.
func (rp *ReportProcessor) fetchRoster(ctx context.Context, query ReportQuery) (map[string]struct{}, error) {
	if !query.MembersOnly {
		return nil, nil
	}

	roster, err := rp.wclClient.GetGuildRoster(ctx, query.GuildID)
	if err != nil {
		log.Warn().
			Err(err).
			Int("guild_id", query.GuildID).
			Msg("Could not fetch guild roster, proceeding with all players")
		return nil, nil
	}

	if len(roster) == 0 {
		log.Warn().
			Int("guild_id", query.GuildID).
			Msg("Guild roster is empty, proceeding with all players")
		return nil, nil
	}

	log.Info().
		Int("members", len(roster)).
		Msg("Filtering report to guild members only")

	return roster, nil
}

// ConvertRaidsToLogs turns raw API attendance records into raw logs for the
// requested zones. Records missing a zone id or start time are dropped with
// a warning; a single malformed record never aborts the run.
func (rp *ReportProcessor) ConvertRaidsToLogs(rawRaids []app.AttendanceRaid, zones []attendance.ZoneID) []attendance.RawLog {
	requested := make(map[attendance.ZoneID]bool, len(zones))
	for _, zone := range zones {
		requested[zone] = true
	}

	var logs []attendance.RawLog
	for _, raid := range rawRaids {
		if raid.Zone.ID == 0 || raid.StartTime == 0 {
			log.Warn().
				Str("code", raid.Code).
				Int("zone_id", raid.Zone.ID).
				Int64("start_time", raid.StartTime).
				Msg("Dropping malformed attendance record")
			continue
		}

		zone := attendance.ZoneID(raid.Zone.ID)
		if !requested[zone] {
			log.Debug().
				Str("zone", raid.Zone.Name).
				Str("code", raid.Code).
				Msg("Skipping raid outside requested zones")
			continue
		}

		attendees := make(map[string]struct{}, len(raid.Players))
		for _, player := range raid.Players {
			// The attendance endpoint reports class in the type field;
			// entries without both name and type are not real players.
			if player.Name != "" && player.Type != "" {
				attendees[player.Name] = struct{}{}
			}
		}

		logs = append(logs, attendance.RawLog{
			Zone:      zone,
			StartTime: time.UnixMilli(raid.StartTime),
			Attendees: attendees,
			Code:      raid.Code,
		})
	}

	return logs
}

// publishReport pushes the finished report to whichever optional targets
// are configured
func (rp *ReportProcessor) publishReport(ctx context.Context, query ReportQuery, rows []attendance.ReportRow) error {
	if rp.sheetsPublisher != nil {
		if err := rp.sheetsPublisher.PublishReport(ctx, rows); err != nil {
			return fmt.Errorf("failed to publish report to spreadsheet: %w", err)
		}
	}

	if rp.historyExporter != nil {
		if err := rp.historyExporter.ExportReport(ctx, rows, time.Now(), query.Days); err != nil {
			return fmt.Errorf("failed to export report history: %w", err)
		}
	}

	if rp.artifactPublisher != nil {
		if err := rp.artifactPublisher.PublishFile(query.OutputPath, filepath.Base(query.OutputPath)); err != nil {
			return fmt.Errorf("failed to upload report artifact: %w", err)
		}
	}

	return nil
}

// logTopRaiders logs the best-attending players for quick inspection
func (rp *ReportProcessor) logTopRaiders(rows []attendance.ReportRow) {
	const topCount = 10

	for i, row := range rows {
		if i >= topCount {
			break
		}
		log.Info().
			Int("rank", i+1).
			Str("player", row.Player).
			Int("attended", row.Attended).
			Int("possible", row.Possible).
			Str("rate", attendance.FormatRate(row.Rate)).
			Msg("Top raider")
	}
}

// occurrenceDateRange returns the earliest and latest occurrence dates
func occurrenceDateRange(occurrences map[attendance.OccurrenceKey]attendance.Occurrence) (string, string) {
	var minDate, maxDate string
	for key := range occurrences {
		if minDate == "" || key.Date < minDate {
			minDate = key.Date
		}
		if maxDate == "" || key.Date > maxDate {
			maxDate = key.Date
		}
	}
	return minDate, maxDate
}
