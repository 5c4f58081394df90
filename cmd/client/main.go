package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/atinyakov/storeviewer/internal/client/api"
	"github.com/atinyakov/storeviewer/internal/client/app"
	"github.com/atinyakov/storeviewer/internal/client/session"
	"github.com/atinyakov/storeviewer/internal/client/view"
	"github.com/atinyakov/storeviewer/internal/config"
	"github.com/atinyakov/storeviewer/internal/logger"
)

var (
	version   string
	buildDate string
)

// cmpOr mirrors cmp.Or (Go 1.22+) for strings so the client builds on Go 1.21.
func cmpOr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// repl runs the interactive shell loop, accepting commands to browse the
// catalog and, once logged in, manage products.
func repl(ctx context.Context, a *app.App, sess *session.Manager, v *view.View, scanner *bufio.Scanner) {
	for {
		fmt.Print("storeviewer> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login, logout, whoami, list, search <term>, category <name>, categories, admin, public, add, edit <id>, delete <id>, exit")
		case "login":
			if sess.Active() {
				fmt.Printf("Already logged in as %s\n", sess.Username())
				continue
			}
			v.OpenLoginDialog()
			username := promptField(scanner, "Username", "")
			password := promptField(scanner, "Password", "")
			_ = a.Login(ctx, username, password)
		case "logout":
			a.Logout()
		case "whoami":
			if sess.Active() {
				fmt.Println(sess.Username())
			} else {
				fmt.Println("Not logged in")
			}
		case "list":
			_ = a.LoadPublicProducts(ctx)
		case "search":
			a.SetSearchTerm(strings.Join(args[1:], " "))
		case "category":
			a.SetCategory(strings.Join(args[1:], " "))
		case "categories":
			if err := a.LoadCategories(ctx); err == nil {
				for _, c := range v.Categories() {
					fmt.Println(c)
				}
			}
		case "admin":
			_ = a.ShowAdminPanel(ctx)
		case "public":
			v.ShowPublicProducts()
		case "add":
			a.NewProductForm()
			form := promptProductForm(scanner, v.Form())
			_ = a.SubmitProduct(ctx, form)
		case "edit":
			id, ok := parseID(args)
			if !ok {
				fmt.Println("Usage: edit <id>")
				continue
			}
			if err := a.EditProduct(ctx, id); err != nil {
				continue
			}
			form := promptProductForm(scanner, v.Form())
			_ = a.SubmitProduct(ctx, form)
		case "delete":
			id, ok := parseID(args)
			if !ok {
				fmt.Println("Usage: delete <id>")
				continue
			}
			_ = a.DeleteProduct(ctx, id)
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func parseID(args []string) (int64, bool) {
	if len(args) < 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// promptField reads one form field; an empty answer keeps the current value.
func promptField(scanner *bufio.Scanner, label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	if !scanner.Scan() {
		return current
	}
	if text := strings.TrimSpace(scanner.Text()); text != "" {
		return text
	}
	return current
}

// promptProductForm fills the product dialog fields interactively, starting
// from whatever the dialog was opened with.
func promptProductForm(scanner *bufio.Scanner, form view.ProductForm) view.ProductForm {
	form.Name = promptField(scanner, "Name", form.Name)
	form.Description = promptField(scanner, "Description", form.Description)
	form.Category = promptField(scanner, "Category", form.Category)
	form.Price = promptField(scanner, "Price", form.Price)
	form.Quantity = promptField(scanner, "Quantity", form.Quantity)
	form.ImageURL = promptField(scanner, "Image URL", form.ImageURL)
	current := "n"
	if form.Available {
		current = "y"
	}
	answer := promptField(scanner, "Available (y/n)", current)
	form.Available = strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
	return form
}

// main parses configuration, wires the client together and starts the shell.
func main() {
	var showVer bool
	flag.BoolVar(&showVer, "version", false, "show build version and date")

	_ = godotenv.Load()
	options := config.Parse()

	if showVer {
		fmt.Printf("Store Viewer Client\nVersion: %s\nBuild Date: %s\n", cmpOr(version, "N/A"), cmpOr(buildDate, "N/A"))
		return
	}

	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()

	store := &session.FileTokenStore{Path: options.TokenFile}
	sess := session.New(store)
	client := api.New(options.BaseURL, sess)
	notifier := view.NewNotifier(os.Stdout)
	v := view.New(os.Stdout, notifier)

	scanner := bufio.NewScanner(os.Stdin)
	confirm := func(prompt string) bool {
		fmt.Printf("%s [y/N]: ", prompt)
		if !scanner.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return answer == "y" || answer == "yes"
	}

	a := app.New(client, sess, v, log.Log, confirm)

	ctx := context.Background()
	_ = a.RestoreSession(ctx)
	_ = a.LoadPublicProducts(ctx)
	_ = a.LoadCategories(ctx)

	repl(ctx, a, sess, v, scanner)
}
