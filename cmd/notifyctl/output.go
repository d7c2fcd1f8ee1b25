package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/notifykit/pkg/statemachine"
	"github.com/dmitrymomot/notifykit/svc/delivery"
	"github.com/dmitrymomot/notifykit/svc/messaging"
)

// SendReport is the result of a preview or send command.
type SendReport struct {
	AttemptID        string             `json:"attemptId" yaml:"attemptId"`
	State            string             `json:"state" yaml:"state"`
	Trail            []string           `json:"trail" yaml:"trail"`
	RecipientKind    string             `json:"recipientKind,omitempty" yaml:"recipientKind,omitempty"`
	Channel          string             `json:"channel,omitempty" yaml:"channel,omitempty"`
	EffectiveChannel string             `json:"effectiveChannel,omitempty" yaml:"effectiveChannel,omitempty"`
	Recipients       []RecipientInfo    `json:"recipients" yaml:"recipients"`
	EmailCount       int                `json:"emailCount" yaml:"emailCount"`
	SMSCount         int                `json:"smsCount" yaml:"smsCount"`
	Excluded         []ExclusionInfo    `json:"excluded,omitempty" yaml:"excluded,omitempty"`
	Unknown          []int64            `json:"unknown,omitempty" yaml:"unknown,omitempty"`
	Estimate         EstimateInfo       `json:"estimate" yaml:"estimate"`
	ScheduledTime    string             `json:"scheduledTime,omitempty" yaml:"scheduledTime,omitempty"`
	Receipt          *messaging.Receipt `json:"receipt,omitempty" yaml:"receipt,omitempty"`
	Error            string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// RecipientInfo is one eligible recipient.
type RecipientInfo struct {
	ContactID int64  `json:"contactId" yaml:"contactId"`
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// ExclusionInfo is a recipient left out of a channel.
type ExclusionInfo struct {
	ContactID int64  `json:"contactId" yaml:"contactId"`
	Name      string `json:"name" yaml:"name"`
	Channel   string `json:"channel" yaml:"channel"`
	Reason    string `json:"reason" yaml:"reason"`
}

// EstimateInfo is the informational price of a send.
type EstimateInfo struct {
	Recipients int     `json:"recipients" yaml:"recipients"`
	UnitCost   float64 `json:"unitCost" yaml:"unitCost"`
	Total      float64 `json:"total" yaml:"total"`
	Currency   string  `json:"currency,omitempty" yaml:"currency,omitempty"`
	Display    string  `json:"display,omitempty" yaml:"display,omitempty"`
}

// MembershipReport is the result of a category command.
type MembershipReport struct {
	AttemptID    string        `json:"attemptId" yaml:"attemptId"`
	State        string        `json:"state" yaml:"state"`
	CategoryID   int64         `json:"categoryId" yaml:"categoryId"`
	CategoryName string        `json:"categoryName,omitempty" yaml:"categoryName,omitempty"`
	Attached     []int64       `json:"attached,omitempty" yaml:"attached,omitempty"`
	Detached     []int64       `json:"detached,omitempty" yaml:"detached,omitempty"`
	Unchanged    int           `json:"unchanged" yaml:"unchanged"`
	Completed    int           `json:"completed" yaml:"completed"`
	Failed       int           `json:"failed" yaml:"failed"`
	Failures     []FailureInfo `json:"failures,omitempty" yaml:"failures,omitempty"`
	Error        string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// FailureInfo is one membership change that did not apply.
type FailureInfo struct {
	ContactID int64  `json:"contactId" yaml:"contactId"`
	Op        string `json:"op" yaml:"op"`
	Error     string `json:"error" yaml:"error"`
}

// StatusReport is the result of a status command.
type StatusReport struct {
	delivery.MessageStatus `yaml:",inline"`
	Pending                bool `json:"pending" yaml:"pending"`
}

func stateNames(states []statemachine.State) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		out = append(out, s.Name())
	}
	return out
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func newSendReport(res messaging.Result, err error) SendReport {
	r := SendReport{
		AttemptID:     res.AttemptID,
		Trail:         stateNames(res.Trail),
		RecipientKind: string(res.Resolution.Kind),
		Channel:       string(res.Plan.Channel),
		EmailCount:    len(res.Plan.Email),
		SMSCount:      len(res.Plan.SMS),
		Unknown:       res.Resolution.Unknown,
		ScheduledTime: res.Payload.ScheduledTime,
		Recipients:    make([]RecipientInfo, 0, len(res.Plan.Recipients)),
		Estimate: EstimateInfo{
			Recipients: res.Estimate.Recipients,
			UnitCost:   res.Estimate.UnitCost,
			Total:      res.Estimate.Total,
		},
		Error: errString(err),
	}
	if res.State != nil {
		r.State = res.State.Name()
	}
	// Attempts that failed before pricing carry no currency.
	if res.Estimate.Currency != (currency.Unit{}) {
		r.Estimate.Currency = res.Estimate.Currency.String()
		r.Estimate.Display = res.Estimate.String()
	}
	switch {
	case res.Payload.Channel != "":
		r.EffectiveChannel = string(res.Payload.Channel)
	case res.Plan.Channel != "":
		r.EffectiveChannel = string(res.Plan.Effective())
	}
	for _, rc := range res.Plan.Recipients {
		r.Recipients = append(r.Recipients, RecipientInfo{
			ContactID: rc.ContactID,
			Name:      rc.Name,
			Email:     rc.Email,
			Phone:     rc.Phone,
		})
	}
	for _, ex := range res.Plan.Excluded {
		r.Excluded = append(r.Excluded, ExclusionInfo{
			ContactID: ex.ContactID,
			Name:      ex.Name,
			Channel:   string(ex.Channel),
			Reason:    ex.Reason,
		})
	}
	if res.Receipt.Success || res.Receipt.Message != "" {
		receipt := res.Receipt
		r.Receipt = &receipt
	}
	return r
}

func newMembershipReport(res messaging.MembershipResult, err error) MembershipReport {
	r := MembershipReport{
		AttemptID:    res.AttemptID,
		CategoryID:   res.Category.ID,
		CategoryName: res.Category.Name,
		Attached:     res.Attached,
		Detached:     res.Detached,
		Unchanged:    res.Unchanged,
		Completed:    res.Completed,
		Failed:       res.Failed,
		Error:        errString(err),
	}
	if res.State != nil {
		r.State = res.State.Name()
	}
	for _, f := range res.Failures {
		r.Failures = append(r.Failures, FailureInfo{
			ContactID: f.ContactID,
			Op:        string(f.Op),
			Error:     errString(f.Err),
		})
	}
	return r
}

// outputResult writes result to w in the given format.
func outputResult(w io.Writer, result any, format string) error {
	switch format {
	case "json":
		return outputJSON(w, result)
	case "yaml":
		return outputYAML(w, result)
	default:
		return outputTable(w, result)
	}
}

func outputJSON(w io.Writer, result any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputYAML(w io.Writer, result any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return err
	}
	return enc.Close()
}

func outputTable(out io.Writer, result any) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	switch r := result.(type) {
	case SendReport:
		return outputSendTable(w, r)
	case MembershipReport:
		return outputMembershipTable(w, r)
	case StatusReport:
		return outputStatusTable(w, r)
	default:
		return outputJSON(out, result)
	}
}

func outputSendTable(w *tabwriter.Writer, r SendReport) error {
	fmt.Fprintf(w, "ATTEMPT:\t%s\n", r.AttemptID)
	fmt.Fprintf(w, "STATE:\t%s\n", r.State)
	fmt.Fprintf(w, "TRAIL:\t%s\n", strings.Join(r.Trail, " > "))
	if r.Channel != "" {
		channel := r.Channel
		if r.EffectiveChannel != "" && r.EffectiveChannel != r.Channel {
			channel += " (as " + r.EffectiveChannel + ")"
		}
		fmt.Fprintf(w, "CHANNEL:\t%s\n", channel)
	}
	fmt.Fprintf(w, "RECIPIENTS:\t%d (email %d, sms %d)\n", len(r.Recipients), r.EmailCount, r.SMSCount)
	if r.Estimate.Display != "" {
		fmt.Fprintf(w, "ESTIMATE:\t%s\n", r.Estimate.Display)
	}
	if r.ScheduledTime != "" {
		fmt.Fprintf(w, "SCHEDULED:\t%s\n", r.ScheduledTime)
	}
	if r.Receipt != nil {
		fmt.Fprintf(w, "MESSAGE ID:\t%s\n", r.Receipt.MessageID)
	}
	if r.Error != "" {
		fmt.Fprintf(w, "ERROR:\t%s\n", r.Error)
	}

	if len(r.Recipients) > 0 {
		fmt.Fprintln(w, "\nID\tNAME\tEMAIL\tPHONE")
		for _, rc := range r.Recipients {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", rc.ContactID, rc.Name, rc.Email, rc.Phone)
		}
	}
	if len(r.Excluded) > 0 {
		fmt.Fprintln(w, "\nEXCLUDED:")
		fmt.Fprintln(w, "ID\tNAME\tCHANNEL\tREASON")
		for _, ex := range r.Excluded {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", ex.ContactID, ex.Name, ex.Channel, ex.Reason)
		}
	}
	if len(r.Unknown) > 0 {
		fmt.Fprintf(w, "\nUNKNOWN IDS:\t%v\n", r.Unknown)
	}
	return nil
}

func outputMembershipTable(w *tabwriter.Writer, r MembershipReport) error {
	fmt.Fprintf(w, "ATTEMPT:\t%s\n", r.AttemptID)
	fmt.Fprintf(w, "STATE:\t%s\n", r.State)
	fmt.Fprintf(w, "CATEGORY:\t%d %s\n", r.CategoryID, r.CategoryName)
	fmt.Fprintf(w, "ATTACHED:\t%v\n", r.Attached)
	fmt.Fprintf(w, "DETACHED:\t%v\n", r.Detached)
	fmt.Fprintf(w, "UNCHANGED:\t%d\n", r.Unchanged)
	fmt.Fprintf(w, "APPLIED:\t%d of %d\n", r.Completed, r.Completed+r.Failed)
	if r.Error != "" {
		fmt.Fprintf(w, "ERROR:\t%s\n", r.Error)
	}

	if len(r.Failures) > 0 {
		fmt.Fprintln(w, "\nFAILURES:")
		fmt.Fprintln(w, "ID\tOP\tERROR")
		for _, f := range r.Failures {
			fmt.Fprintf(w, "%d\t%s\t%s\n", f.ContactID, f.Op, f.Error)
		}
	}
	return nil
}

func outputStatusTable(w *tabwriter.Writer, r StatusReport) error {
	fmt.Fprintf(w, "MESSAGE ID:\t%s\n", r.MessageID)
	fmt.Fprintf(w, "STATUS:\t%s\n", r.Status)
	if r.Recipient != "" {
		fmt.Fprintf(w, "RECIPIENT:\t%s\n", r.Recipient)
	}
	if r.Type != "" {
		fmt.Fprintf(w, "TYPE:\t%s\n", r.Type)
	}
	if r.Timestamp != "" {
		fmt.Fprintf(w, "UPDATED:\t%s\n", r.Timestamp)
	}
	if r.ErrorMessage != "" {
		fmt.Fprintf(w, "ERROR:\t%s\n", r.ErrorMessage)
	}
	return nil
}
