package cli

import (
	"context"
	"fmt"

	"github.com/Versatly/zoho-mail-cli/internal/output"
)

var labelColumns = []output.Column{
	{Name: "Name", Key: "LabelName"},
	{Name: "Color", Key: "LabelColor"},
	{Name: "ID", Key: "LabelID"},
}

// LabelsListCmd lists all labels
type LabelsListCmd struct{}

// Run executes the list labels command
func (cmd *LabelsListCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	labels, err := mail.ListLabels(ctx)
	if err != nil {
		return wrapServiceError("fetch labels", err)
	}

	return fp.Formatter.PrintList(labels, labelColumns)
}

// LabelsCreateCmd creates a label
type LabelsCreateCmd struct {
	Name  string `arg:"" help:"Label name"`
	Color string `help:"Display color (hex)"`
}

// Run executes the create label command
func (cmd *LabelsCreateCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	label, err := mail.CreateLabel(ctx, cmd.Name, cmd.Color)
	if err != nil {
		return wrapServiceError("create label", err)
	}

	fp.Formatter.PrintMessage(fmt.Sprintf("Created label %s (%s)", label.LabelName, label.LabelID))
	return nil
}

// LabelsUpdateCmd updates a label's name or color
type LabelsUpdateCmd struct {
	LabelID string `arg:"" help:"Label ID"`
	Name    string `help:"New label name"`
	Color   string `help:"New display color (hex)"`
}

// Run executes the update label command
func (cmd *LabelsUpdateCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	if err := mail.UpdateLabel(ctx, cmd.LabelID, cmd.Name, cmd.Color); err != nil {
		return wrapServiceError("update label", err)
	}

	fp.Formatter.PrintMessage("Updated label " + cmd.LabelID)
	return nil
}

// LabelsDeleteCmd deletes a label permanently
type LabelsDeleteCmd struct {
	LabelID string `arg:"" help:"Label ID"`
}

// Run executes the delete label command
func (cmd *LabelsDeleteCmd) Run(sp *ServiceProvider, fp *FormatterProvider, globals *Globals) error {
	if !globals.Force {
		fp.Formatter.PrintMessage("Refusing to delete without --force")
		fp.Formatter.PrintHint(fmt.Sprintf("Rerun: zmail labels delete %s --force", cmd.LabelID))
		return nil
	}

	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	if err := mail.DeleteLabel(ctx, cmd.LabelID); err != nil {
		return wrapServiceError("delete label", err)
	}

	fp.Formatter.PrintMessage("Deleted label " + cmd.LabelID)
	return nil
}
