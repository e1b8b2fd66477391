package utils

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/zxkane/aws-skills/internal/models"
)

// Formatter handles different output formats
type Formatter struct {
	format      string
	showDetails bool
}

// NewFormatter creates a new formatter instance
func NewFormatter(format string) *Formatter {
	return &Formatter{format: format}
}

// NewFormatterWithOptions creates a new formatter instance with options
func NewFormatterWithOptions(format string, showDetails bool) *Formatter {
	return &Formatter{
		format:      format,
		showDetails: showDetails,
	}
}

// FormatGateways formats gateway data according to the specified format
func (f *Formatter) FormatGateways(gateways []models.Gateway, w io.Writer) error {
	switch f.format {
	case "json":
		return encodeJSON(gateways, w)
	case "csv":
		return f.formatGatewaysCSV(gateways, w)
	case "table":
		return f.formatGatewaysTable(gateways, w)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// formatGatewaysTable formats gateways as a table
func (f *Formatter) formatGatewaysTable(gateways []models.Gateway, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() {
		_ = tw.Flush()
	}()

	if f.showDetails {
		if _, err := fmt.Fprintln(tw, "GATEWAY ID\tNAME\tSTATUS\tPROTOCOL\tAUTHORIZER\tLAST UPDATED"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(tw, "----------\t----\t------\t--------\t----------\t------------"); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(tw, "NAME\tSTATUS\tLAST UPDATED"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(tw, "----\t------\t------------"); err != nil {
			return err
		}
	}

	for _, gw := range gateways {
		if f.showDetails {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				gw.ID,
				gw.Name,
				gw.Status,
				valueOrDash(gw.ProtocolType),
				valueOrDash(gw.AuthorizerType),
				formatTime(gw.GetUpdated()),
			); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n",
				gw.Name,
				gw.Status,
				formatTime(gw.GetUpdated()),
			); err != nil {
				return err
			}
		}
	}

	return nil
}

// formatGatewaysCSV formats gateways as CSV
func (f *Formatter) formatGatewaysCSV(gateways []models.Gateway, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{
		"GatewayID", "Name", "Status", "Protocol", "Authorizer", "URL", "LastUpdated",
	}); err != nil {
		return err
	}

	for _, gw := range gateways {
		record := []string{
			gw.ID,
			gw.Name,
			gw.Status,
			gw.ProtocolType,
			gw.AuthorizerType,
			gw.URL,
			formatTime(gw.GetUpdated()),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

// FormatTargets formats target data according to the specified format
func (f *Formatter) FormatTargets(targets []models.Target, w io.Writer) error {
	switch f.format {
	case "json":
		return encodeJSON(targets, w)
	case "csv":
		return f.formatTargetsCSV(targets, w)
	case "table":
		return f.formatTargetsTable(targets, w)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// formatTargetsTable formats targets as a table
func (f *Formatter) formatTargetsTable(targets []models.Target, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() {
		_ = tw.Flush()
	}()

	if f.showDetails {
		if _, err := fmt.Fprintln(tw, "TARGET ID\tNAME\tSTATUS\tTYPE\tCREDENTIALS\tLAST UPDATED"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(tw, "---------\t----\t------\t----\t-----------\t------------"); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(tw, "NAME\tSTATUS\tTYPE"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(tw, "----\t------\t----"); err != nil {
			return err
		}
	}

	for _, target := range targets {
		if f.showDetails {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				target.ID,
				target.Name,
				target.Status,
				valueOrDash(target.TargetType),
				valueOrDash(strings.Join(target.CredentialProviderTypes, " ")),
				formatTime(target.UpdatedAt),
			); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n",
				target.Name,
				target.Status,
				valueOrDash(target.TargetType),
			); err != nil {
				return err
			}
		}
	}

	return nil
}

// formatTargetsCSV formats targets as CSV
func (f *Formatter) formatTargetsCSV(targets []models.Target, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{
		"TargetID", "GatewayID", "Name", "Status", "Type", "Credentials", "LastUpdated",
	}); err != nil {
		return err
	}

	for _, target := range targets {
		record := []string{
			target.ID,
			target.GatewayID,
			target.Name,
			target.Status,
			target.TargetType,
			strings.Join(target.CredentialProviderTypes, " "),
			formatTime(target.UpdatedAt),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

// FormatSkills formats skill document data according to the specified format
func (f *Formatter) FormatSkills(skills []models.Skill, w io.Writer) error {
	switch f.format {
	case "json":
		return encodeJSON(skills, w)
	case "csv":
		return f.formatSkillsCSV(skills, w)
	case "table":
		return f.formatSkillsTable(skills, w)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// formatSkillsTable formats skills as a table
func (f *Formatter) formatSkillsTable(skills []models.Skill, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() {
		_ = tw.Flush()
	}()

	if _, err := fmt.Fprintln(tw, "NAME\tDIRECTORY\tDESCRIPTION"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(tw, "----\t---------\t-----------"); err != nil {
		return err
	}

	for _, skill := range skills {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n",
			skill.Meta.Name,
			skill.Dir,
			truncate(skill.Meta.Description, 80),
		); err != nil {
			return err
		}
	}

	return nil
}

// formatSkillsCSV formats skills as CSV
func (f *Formatter) formatSkillsCSV(skills []models.Skill, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Name", "Directory", "License", "Description"}); err != nil {
		return err
	}

	for _, skill := range skills {
		record := []string{
			skill.Meta.Name,
			skill.Dir,
			skill.Meta.License,
			skill.Meta.Description,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

// FormatReport emits a validation report. Only JSON is supported: in table
// mode the check runner already printed the results as they happened.
func (f *Formatter) FormatReport(report *models.ValidationReport, w io.Writer) error {
	switch f.format {
	case "json":
		return encodeJSON(report, w)
	default:
		return fmt.Errorf("unsupported report format: %s", f.format)
	}
}

// FormatJSON writes any value as indented JSON regardless of the
// formatter's configured format
func (f *Formatter) FormatJSON(v interface{}, w io.Writer) error {
	return encodeJSON(v, w)
}

// encodeJSON writes v as indented JSON
func encodeJSON(v interface{}, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatTime renders a timestamp in the local timezone, or N/A when unset
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format("2006-01-02 15:04-0700")
}

// valueOrDash substitutes a dash for empty table cells
func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens s to at most max runes, appending "..." when cut
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// FilterGatewaysByName filters gateways by name or gateway ID substring
func FilterGatewaysByName(gateways []models.Gateway, pattern string) []models.Gateway {
	if pattern == "" {
		return gateways
	}

	var filtered []models.Gateway
	lowerPattern := strings.ToLower(pattern)

	for _, gw := range gateways {
		if strings.Contains(strings.ToLower(gw.Name), lowerPattern) {
			filtered = append(filtered, gw)
			continue
		}
		if strings.Contains(strings.ToLower(gw.ID), lowerPattern) {
			filtered = append(filtered, gw)
			continue
		}
	}

	return filtered
}

// FilterGatewaysByStatus filters gateways by their current status
func FilterGatewaysByStatus(gateways []models.Gateway, statusFilter string) []models.Gateway {
	if statusFilter == "" {
		return gateways
	}

	var filtered []models.Gateway
	lowerFilter := strings.ToLower(statusFilter)

	for _, gw := range gateways {
		switch lowerFilter {
		case "ready":
			if gw.IsReady() {
				filtered = append(filtered, gw)
			}
		case "failed", "failure", "fail":
			if gw.Status == models.GatewayStatusFailed {
				filtered = append(filtered, gw)
			}
		case "inprogress", "in-progress", "transitional":
			if gw.IsTransitional() {
				filtered = append(filtered, gw)
			}
		default:
			if strings.Contains(strings.ToLower(gw.Status), lowerFilter) {
				filtered = append(filtered, gw)
			}
		}
	}

	return filtered
}

// GetCacheStatusColorText returns colored cache status text
func GetCacheStatusColorText(fromCache bool) string {
	if fromCache {
		return Success("Cache")
	}
	return Warning("API")
}
