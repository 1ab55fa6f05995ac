package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/dashboard"
	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/models"
)

// run executes one dashboard command against a loaded view and prints the catalog
func run(ctx context.Context, view *dashboard.View, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given")
	}

	var err error
	switch args[0] {
	case "list":
	case "add":
		err = addFood(ctx, view, args[1:])
	case "edit":
		err = editFood(ctx, view, args[1:])
	case "toggle":
		err = withID(args[1:], func(id int64) error {
			if _, ok := view.Find(id); !ok {
				return fmt.Errorf("food %d not found", id)
			}
			return view.ToggleAvailability(ctx, id)
		})
	case "delete":
		err = withID(args[1:], func(id int64) error {
			return view.DeleteItem(ctx, id)
		})
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
	if err != nil {
		return err
	}

	return render(out, view.Snapshot())
}

func addFood(ctx context.Context, view *dashboard.View, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	var draft models.FoodDraft
	fs.StringVar(&draft.Name, "name", "", "Food name")
	fs.StringVar(&draft.Image, "image", "", "Image URL")
	fs.StringVar(&draft.Price, "price", "", "Price, e.g. 19.90")
	fs.StringVar(&draft.Description, "description", "", "Description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	view.OpenCreateModal()
	defer view.CloseCreateModal()

	_, err := view.AddItem(ctx, draft)
	return err
}

func editFood(ctx context.Context, view *dashboard.View, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	id := fs.Int64("id", 0, "ID of the food to edit")
	name := fs.String("name", "", "New name")
	image := fs.String("image", "", "New image URL")
	price := fs.String("price", "", "New price")
	description := fs.String("description", "", "New description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// only flags given on the command line become part of the patch
	var patch models.FoodPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "image":
			patch.Image = image
		case "price":
			patch.Price = price
		case "description":
			patch.Description = description
		}
	})

	item, ok := view.Find(*id)
	if !ok {
		return fmt.Errorf("food %d not found", *id)
	}

	view.OpenEditModal(item)
	defer view.CloseEditModal()

	_, err := view.UpdateItem(ctx, patch)
	return err
}

func withID(args []string, fn func(id int64) error) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one food ID")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid food ID: %s", args[0])
	}
	return fn(id)
}

func render(out io.Writer, snap dashboard.Snapshot) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tAVAILABLE\tDESCRIPTION")
	for _, food := range snap.Foods {
		available := "no"
		if food.Available {
			available = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", food.ID, food.Name, food.Price, available, food.Description)
	}
	return tw.Flush()
}
