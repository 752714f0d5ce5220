package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"marketplace/internal/adapter/view"
	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"
	"marketplace/pkg/utils"
)

var errUsage = errors.New("usage")

const usage = `usage: market <command> [arguments]

  landing
  login -email E -password P
  register user|seller -email E -first F -last L -password P
  whoami
  logout

  seller home
  seller products [-page N] [-limit N]
  seller show <id>
  seller add -title T -description D -price P [-quantity Q] -tag ID [-image FILE]...
  seller edit <id> [-title T] [-description D] [-price P] [-quantity Q] [-tag ID]
  seller delete <id>

  catalog [-page N] [-limit N]
  cart
  cart add <productId> [-qty N]
  cart inc|dec|remove <itemId>
  cart set <itemId> <quantity>
`

type app struct {
	pages    *view.Pages
	sessions *usecase.SessionStore
	out      io.Writer
}

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func dispatch(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return a.pages.Landing(a.out)
	}

	switch args[0] {
	case "landing":
		return a.pages.Landing(a.out)
	case "login":
		return a.login(ctx, args[1:])
	case "register":
		return a.register(ctx, args[1:])
	case "whoami":
		return a.whoami()
	case "logout":
		return a.pages.Logout(ctx, a.out)
	case "seller":
		return a.seller(ctx, args[1:])
	case "catalog":
		page, _, err := pageFlags("catalog", args[1:])
		if err != nil {
			return err
		}
		return a.pages.BuyerCatalog(ctx, a.out, page)
	case "cart":
		return a.cart(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	}
	fmt.Fprint(os.Stderr, usage)
	return errUsage
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return a.pages.Login(ctx, a.out, *email, *password)
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errUsage
	}
	var role entity.Role
	switch args[0] {
	case "user":
		role = entity.RoleUser
	case "seller":
		role = entity.RoleSeller
	default:
		fmt.Fprint(os.Stderr, usage)
		return errUsage
	}

	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	var input repository.Registration
	fs.StringVar(&input.Email, "email", "", "account email")
	fs.StringVar(&input.FirstName, "first", "", "first name")
	fs.StringVar(&input.LastName, "last", "", "last name")
	fs.StringVar(&input.Password, "password", "", "password, at least 6 characters")
	if err := fs.Parse(args[1:]); err != nil {
		return errUsage
	}
	return a.pages.Register(ctx, a.out, role, input)
}

func (a *app) whoami() error {
	session := a.sessions.Snapshot().Session
	if !session.IsAuthenticated {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> %s\n", session.User.DisplayName(), session.User.Email, session.User.Role)
	return nil
}

func (a *app) seller(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.pages.SellerHome(ctx, a.out)
	}
	rest := args[1:]

	switch args[0] {
	case "home":
		return a.pages.SellerHome(ctx, a.out)
	case "products":
		page, _, err := pageFlags("seller products", rest)
		if err != nil {
			return err
		}
		return a.pages.SellerProducts(ctx, a.out, page)
	case "show":
		id, err := oneArg(rest)
		if err != nil {
			return err
		}
		return a.pages.SellerProductDetail(ctx, a.out, id)
	case "add":
		return a.addProduct(ctx, rest)
	case "edit":
		return a.editProduct(ctx, rest)
	case "delete":
		id, err := oneArg(rest)
		if err != nil {
			return err
		}
		return a.pages.DeleteProduct(ctx, a.out, id)
	}
	fmt.Fprint(os.Stderr, usage)
	return errUsage
}

func productFlags(name string) (*flag.FlagSet, map[usecase.Field]*string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return fs, map[usecase.Field]*string{
		usecase.FieldTitle:       fs.String("title", "", "product title"),
		usecase.FieldDescription: fs.String("description", "", "product description"),
		usecase.FieldPrice:       fs.String("price", "", "unit price"),
		usecase.FieldQuantity:    fs.String("quantity", "", "units in stock"),
		usecase.FieldTag:         fs.String("tag", "", "tag id"),
	}
}

func (a *app) addProduct(ctx context.Context, args []string) error {
	fs, values := productFlags("seller add")
	var imagePaths stringList
	fs.Var(&imagePaths, "image", "image file to upload, repeatable")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	form := usecase.NewProductForm()
	for field, v := range values {
		form.Set(field, *v)
	}

	images := make([]entity.ImageFile, 0, len(imagePaths))
	for _, path := range imagePaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read image %s: %w", path, err)
		}
		images = append(images, entity.ImageFile{Name: filepath.Base(path), Data: data})
	}
	return a.pages.AddProduct(ctx, a.out, form, images)
}

// editProduct only applies flags that were given on the command line.
func (a *app) editProduct(ctx context.Context, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fmt.Fprint(os.Stderr, usage)
		return errUsage
	}
	id := args[0]

	fs, _ := productFlags("seller edit")
	if err := fs.Parse(args[1:]); err != nil {
		return errUsage
	}
	changes := make(map[usecase.Field]string)
	fs.Visit(func(f *flag.Flag) {
		if field := flagField(f.Name); field != "" {
			changes[field] = f.Value.String()
		}
	})
	return a.pages.EditProduct(ctx, a.out, id, changes)
}

func flagField(name string) usecase.Field {
	switch name {
	case "title":
		return usecase.FieldTitle
	case "description":
		return usecase.FieldDescription
	case "price":
		return usecase.FieldPrice
	case "quantity":
		return usecase.FieldQuantity
	case "tag":
		return usecase.FieldTag
	}
	return ""
}

func (a *app) cart(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "show" {
		return a.pages.Cart(ctx, a.out)
	}
	rest := args[1:]

	switch args[0] {
	case "add":
		if len(rest) == 0 || strings.HasPrefix(rest[0], "-") {
			fmt.Fprint(os.Stderr, usage)
			return errUsage
		}
		fs := flag.NewFlagSet("cart add", flag.ContinueOnError)
		qty := fs.Int("qty", 1, "quantity to add")
		if err := fs.Parse(rest[1:]); err != nil {
			return errUsage
		}
		return a.pages.AddToCart(ctx, a.out, rest[0], *qty)
	case "inc":
		id, err := oneArg(rest)
		if err != nil {
			return err
		}
		return a.pages.CartIncrement(ctx, a.out, id)
	case "dec":
		id, err := oneArg(rest)
		if err != nil {
			return err
		}
		return a.pages.CartDecrement(ctx, a.out, id)
	case "remove":
		id, err := oneArg(rest)
		if err != nil {
			return err
		}
		return a.pages.CartRemove(ctx, a.out, id)
	case "set":
		if len(rest) != 2 {
			fmt.Fprint(os.Stderr, usage)
			return errUsage
		}
		qty, err := strconv.Atoi(rest[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "quantity must be a whole number")
			return errUsage
		}
		return a.pages.CartSetQuantity(ctx, a.out, rest[0], qty)
	}
	fmt.Fprint(os.Stderr, usage)
	return errUsage
}

func pageFlags(name string, args []string) (utils.PaginationParams, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", utils.DefaultPageSize, "items per page")
	if err := fs.Parse(args); err != nil {
		return utils.PaginationParams{}, nil, errUsage
	}
	return utils.NewPagination(*page, *limit), fs.Args(), nil
}

func oneArg(args []string) (string, error) {
	if len(args) != 1 {
		fmt.Fprint(os.Stderr, usage)
		return "", errUsage
	}
	return args[0], nil
}
