package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/models"
)

var getInt = GetInt
var getConfirmation = GetConfirmation

// List prints the account's contacts.
func (a *App) List(ctx context.Context) error {
	list, err := a.store.ReadAll(ctx)
	if err != nil {
		a.reportStoreError(err)
		return nil
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No contacts.")
		return nil
	}
	for _, c := range list {
		fmt.Fprintln(a.out, c)
	}
	return nil
}

// Add prompts for the fields of a new contact and stores it.
func (a *App) Add(ctx context.Context) error {
	details, err := a.readDetails(models.ContactDetails{})
	if err != nil {
		return err
	}

	id, err := a.store.Create(ctx, details)
	if err != nil {
		a.reportStoreError(err)
		return nil
	}

	fmt.Fprintf(a.out, "Contact saved with id %d.\n", id)
	return nil
}

// Edit prompts for a contact id and new field values. Empty answers keep
// the current value.
func (a *App) Edit(ctx context.Context) error {
	current, found, err := a.selectContact(ctx, "Enter contact id to edit")
	if err != nil || !found {
		return err
	}

	details, err := a.readDetails(current.ContactDetails)
	if err != nil {
		return err
	}

	if err := a.store.Update(ctx, current.ID, details); err != nil {
		a.reportStoreError(err)
		return nil
	}

	fmt.Fprintln(a.out, "Contact updated.")
	return nil
}

// Delete prompts for a contact id and removes it after confirmation.
func (a *App) Delete(ctx context.Context) error {
	current, found, err := a.selectContact(ctx, "Enter contact id to delete")
	if err != nil || !found {
		return err
	}

	ok, err := getConfirmation(a.reader, fmt.Sprintf("Delete %s %s?", current.Name, current.Surname), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.store.Delete(ctx, current.ID); err != nil {
		a.reportStoreError(err)
		return nil
	}

	fmt.Fprintln(a.out, "Contact deleted.")
	return nil
}

// Export uploads a snapshot of the account's contacts.
func (a *App) Export(ctx context.Context) error {
	if !a.backup.Enabled() {
		fmt.Fprintln(a.out, "Backup storage is not configured.")
		return nil
	}

	key, err := a.backup.Export(ctx, a.store)
	if err != nil {
		a.reportStoreError(err)
		return nil
	}

	fmt.Fprintf(a.out, "Contacts exported to %s.\n", key)
	return nil
}

// selectContact asks for an id and looks it up among the account's own
// contacts, so ids of other accounts read as unknown.
func (a *App) selectContact(ctx context.Context, prompt string) (models.Contact, bool, error) {
	id, err := getInt(a.reader, prompt, a.out, 0)
	if err != nil {
		return models.Contact{}, false, err
	}

	list, err := a.store.ReadAll(ctx)
	if err != nil {
		a.reportStoreError(err)
		return models.Contact{}, false, nil
	}

	for _, c := range list {
		if c.ID == id {
			return c, true, nil
		}
	}

	fmt.Fprintf(a.out, "Contact %d not found.\n", id)
	return models.Contact{}, false, nil
}

// readDetails prompts for every contact field, showing cur as the default.
func (a *App) readDetails(cur models.ContactDetails) (models.ContactDetails, error) {
	d := cur

	fields := []struct {
		label string
		dst   *string
	}{
		{"Name", &d.Name},
		{"Surname", &d.Surname},
		{"Address", &d.Address},
		{"Phone", &d.Phone},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, withDefault(f.label, *f.dst), a.out)
		if err != nil {
			return d, err
		}
		if v != "" {
			*f.dst = v
		}
	}

	ageDefault := ""
	if cur.Age != 0 {
		ageDefault = fmt.Sprint(cur.Age)
	}
	age, err := getInt(a.reader, withDefault("Age", ageDefault), a.out, int64(cur.Age))
	if err != nil {
		return d, err
	}
	d.Age = int(age)

	return d, nil
}

func withDefault(label, value string) string {
	if value == "" {
		return label
	}
	return fmt.Sprintf("%s [%s]", label, value)
}

func (a *App) reportStoreError(err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		fmt.Fprintln(a.out, err)
	case errors.Is(err, common.ErrorBackupDisabled):
		fmt.Fprintln(a.out, "Backup storage is not configured.")
	default:
		fmt.Fprintln(a.out, "Server error, please try again later.")
	}
}
