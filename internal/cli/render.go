package cli

import (
	"fmt"
	"io"

	"github.com/toyswap/toyswap/internal/domain/exchange"
	"github.com/toyswap/toyswap/internal/domain/item"
)

type itemList struct {
	Items  []*item.Item `json:"items"`
	Cursor string       `json:"cursor,omitempty"`
}

type exchangeList struct {
	Exchanges []*exchange.View `json:"exchanges"`
	Cursor    string           `json:"cursor,omitempty"`
}

func renderView(w io.Writer, v *exchange.View) {
	fmt.Fprintf(w, "Exchange %s [%s]\n", v.ExchangeID, v.StatusLabel)
	fmt.Fprintf(w, "  You:         %s (%s), %s\n", v.Mine.Item.Name, v.Mine.Item.ItemID, v.Mine.StatusLabel)
	fmt.Fprintf(w, "  Counterpart: %s, %s (%s), %s\n", v.Counterpart.UserName, v.Counterpart.Item.Name, v.Counterpart.Item.ItemID, v.Counterpart.StatusLabel)
	if v.ActionLabel != "" {
		if v.Decision.Available() {
			fmt.Fprintf(w, "  Action:      %s (exchangectl exchange confirm %s)\n", v.ActionLabel, v.ExchangeID)
		} else {
			fmt.Fprintf(w, "  Action:      %s\n", v.ActionLabel)
		}
	}
	if v.Message != "" {
		fmt.Fprintf(w, "  Status:      %s\n", v.Message)
	}
	if v.Decision.CanCancel {
		fmt.Fprintf(w, "  Cancel:      exchangectl exchange cancel %s\n", v.ExchangeID)
	}
}

func renderExchangeList(w io.Writer, l exchangeList) {
	if len(l.Exchanges) == 0 {
		fmt.Fprintln(w, "No exchanges.")
	}
	for _, v := range l.Exchanges {
		fmt.Fprintf(w, "%s [%s] %s for %s with %s\n",
			v.ExchangeID, v.StatusLabel, v.Mine.Item.Name, v.Counterpart.Item.Name, v.Counterpart.UserName)
		if v.Decision.Available() {
			fmt.Fprintf(w, "  next: %s\n", v.ActionLabel)
		}
	}
	renderCursor(w, l.Cursor)
}

func renderItem(w io.Writer, it *item.Item) {
	fmt.Fprintf(w, "Toy %s: %s\n", it.ItemID, it.Name)
	fmt.Fprintf(w, "  Owner:       %s\n", it.OwnerID)
	fmt.Fprintf(w, "  Status:      %s\n", it.Status)
	if it.Description != nil && *it.Description != "" {
		fmt.Fprintf(w, "  Description: %s\n", *it.Description)
	}
	if it.PhotoURL != nil && *it.PhotoURL != "" {
		fmt.Fprintf(w, "  Photo:       %s\n", *it.PhotoURL)
	}
}

func renderItemList(w io.Writer, l itemList) {
	if len(l.Items) == 0 {
		fmt.Fprintln(w, "No toys.")
	}
	for _, it := range l.Items {
		fmt.Fprintf(w, "%s [%s] %s (owner %s)\n", it.ItemID, it.Status, it.Name, it.OwnerID)
	}
	renderCursor(w, l.Cursor)
}

func renderCursor(w io.Writer, cursor string) {
	if cursor != "" {
		fmt.Fprintf(w, "More results: --cursor %s\n", cursor)
	}
}
