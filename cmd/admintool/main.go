// Command admintool manages admin accounts directly in the store.
//
//	admintool list
//	admintool create-default
//	admintool create -email a@b.c -password secret [-name "Jane"]
//	admintool promote <email>
//
// It reads the same environment (and .env file) as the server.
package main

import (
    "context"
    "flag"
    "fmt"
    "os"
    "text/tabwriter"
    "time"

    "github.com/labstack/gommon/log"

    "github.com/iliyamo/property-booking/internal/config"
    "github.com/iliyamo/property-booking/internal/database"
    "github.com/iliyamo/property-booking/internal/notify"
    "github.com/iliyamo/property-booking/internal/service"
)

const (
    defaultAdminEmail    = "admin@hotel.com"
    defaultAdminPassword = "admin123"
    defaultAdminName     = "Administrator"
)

func usage() {
    fmt.Fprintln(os.Stderr, "usage: admintool list | create-default | create -email E -password P [-name N] | promote <email>")
    os.Exit(2)
}

func main() {
    if len(os.Args) < 2 {
        usage()
    }
    cfg := config.LoadTools()
    if cfg.StoreDriver == config.StoreMemory {
        log.Fatal("admintool needs a persistent store; STORE_DRIVER=memory keeps nothing")
    }
    store, err := database.OpenStore(cfg)
    if err != nil {
        log.Fatal(err)
    }
    defer store.Close(context.Background())

    auth := service.NewAuthService(store.Users, notify.Discard{}, service.AuthConfig{
        Secret:     cfg.JWTSecret,
        TokenTTL:   cfg.TokenTTL,
        BcryptCost: cfg.BcryptCost,
    })

    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    defer cancel()

    switch cmd, args := os.Args[1], os.Args[2:]; cmd {
    case "list":
        err = listUsers(ctx, auth)
    case "create-default":
        err = ensureAdmin(ctx, auth, defaultAdminName, defaultAdminEmail, defaultAdminPassword)
    case "create":
        fs := flag.NewFlagSet("create", flag.ExitOnError)
        email := fs.String("email", "", "admin email")
        password := fs.String("password", "", "admin password (min 6 characters)")
        name := fs.String("name", defaultAdminName, "display name")
        _ = fs.Parse(args)
        if *email == "" || *password == "" {
            usage()
        }
        err = ensureAdmin(ctx, auth, *name, *email, *password)
    case "promote":
        if len(args) != 1 {
            usage()
        }
        err = promote(ctx, auth, args[0])
    default:
        usage()
    }
    if err != nil {
        log.Fatal(err)
    }
}

func ensureAdmin(ctx context.Context, auth *service.AuthService, name, email, password string) error {
    u, created, err := auth.EnsureAdmin(ctx, name, email, password)
    if err != nil {
        return err
    }
    if created {
        fmt.Printf("created admin %s (id %s)\n", u.Email, u.ID)
    } else {
        fmt.Printf("%s already exists; role is admin\n", u.Email)
    }
    return nil
}

func promote(ctx context.Context, auth *service.AuthService, email string) error {
    u, err := auth.Promote(ctx, email)
    if err != nil {
        return err
    }
    fmt.Printf("%s is now admin\n", u.Email)
    return nil
}

func listUsers(ctx context.Context, auth *service.AuthService) error {
    users, err := auth.ListUsers(ctx)
    if err != nil {
        return err
    }
    w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
    fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tCREATED")
    for _, u := range users {
        fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, u.Role, u.CreatedAt.Format(time.RFC3339))
    }
    return w.Flush()
}
