package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"portfoliohub/internal/builder"
	"portfoliohub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type tokenData struct {
	Token string `json:"token"`
}

type authResponse struct {
	Token string `json:"token"`
}

type listResponse[T any] struct {
	Total int `json:"total"`
	Items []T `json:"items"`
}

func main() {
	global := flag.NewFlagSet("portfoliohub", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	tokenPath := global.String("token", defaultTokenPath(), "token file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}

	client := &http.Client{Timeout: 15 * time.Second}

	switch cmd {
	case "auth":
		handleAuth(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "portfolio":
		handlePortfolio(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "component":
		handleComponent(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "builder":
		handleBuilder(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "export":
		handleExport(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "preview":
		handlePreview(*baseURL, sub, args[2:])
	case "notify":
		handleNotify(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *email == "" || *password == "" {
			log.Fatal("email and password are required")
		}

		payload := map[string]string{"email": *email, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/login", "", payload, &resp); err != nil {
			log.Fatalf("login failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("✅ logged in")
	case "register":
		fs := flag.NewFlagSet("auth register", flag.ExitOnError)
		username := fs.String("username", "", "username")
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *username == "" || *email == "" || *password == "" {
			log.Fatal("username, email, and password are required")
		}

		payload := map[string]string{"username": *username, "email": *email, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/register", "", payload, &resp); err != nil {
			log.Fatalf("register failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("✅ registered and logged in")
	case "logout":
		if err := clearToken(tokenPath); err != nil {
			log.Fatalf("logout failed: %v", err)
		}
		fmt.Println("✅ logged out")
	default:
		log.Fatal("usage: portfoliohub auth <login|register|logout>")
	}
}

func handlePortfolio(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	token := mustToken(tokenPath)
	switch sub {
	case "list":
		var resp listResponse[map[string]any]
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/portfolios", token, nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(resp)
	case "show":
		id := requireID(args, "portfolio id")
		var resp models.Portfolio
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/portfolios/"+id, token, nil, &resp); err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(resp)
	case "create":
		fs := flag.NewFlagSet("portfolio create", flag.ExitOnError)
		title := fs.String("title", "", "portfolio title")
		skin := fs.String("template", "", "template type (modern|classic|minimal|creative|developer)")
		_ = fs.Parse(args)
		if *title == "" {
			log.Fatal("title is required")
		}

		payload := map[string]any{"title": *title}
		if *skin != "" {
			payload["template_type"] = *skin
		}
		var resp models.Portfolio
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/portfolios", token, payload, &resp); err != nil {
			log.Fatalf("create failed: %v", err)
		}
		printJSON(resp)
	case "publish":
		id := requireID(args, "portfolio id")
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/portfolios/"+id+"/publish", token, nil, &resp); err != nil {
			log.Fatalf("publish failed: %v", err)
		}
		printJSON(resp)
	case "unpublish":
		id := requireID(args, "portfolio id")
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/portfolios/"+id+"/unpublish", token, nil, &resp); err != nil {
			log.Fatalf("unpublish failed: %v", err)
		}
		printJSON(resp)
	case "delete":
		id := requireID(args, "portfolio id")
		if err := doJSON(ctx, client, http.MethodDelete, baseURL+"/portfolios/"+id, token, nil, nil); err != nil {
			log.Fatalf("delete failed: %v", err)
		}
		fmt.Println("✅ deleted")
	default:
		log.Fatal("usage: portfoliohub portfolio <list|show|create|publish|unpublish|delete>")
	}
}

func handleComponent(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	token := mustToken(tokenPath)
	api := &apiClient{client: client, baseURL: baseURL, token: token}
	switch sub {
	case "list":
		fs := flag.NewFlagSet("component list", flag.ExitOnError)
		portfolioID := fs.Int64("portfolio", 0, "portfolio id")
		_ = fs.Parse(args)
		if *portfolioID == 0 {
			log.Fatal("portfolio id is required")
		}

		comps, err := api.listComponents(ctx, *portfolioID)
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(comps)
	case "add":
		fs := flag.NewFlagSet("component add", flag.ExitOnError)
		portfolioID := fs.Int64("portfolio", 0, "portfolio id")
		compType := fs.String("type", "", "component type")
		contentJSON := fs.String("content", "{}", "content JSON")
		_ = fs.Parse(args)
		if *portfolioID == 0 || *compType == "" {
			log.Fatal("portfolio id and type are required")
		}
		if !models.IsComponentType(*compType) {
			log.Fatalf("unknown component type %q", *compType)
		}

		var content map[string]any
		if err := json.Unmarshal([]byte(*contentJSON), &content); err != nil {
			log.Fatalf("invalid content JSON: %v", err)
		}
		comp := &models.Component{ComponentType: *compType, Content: content, IsVisible: true}
		created, err := api.CreateComponent(ctx, *portfolioID, comp)
		if err != nil {
			log.Fatalf("add failed: %v", err)
		}
		printJSON(created)
	case "delete":
		fs := flag.NewFlagSet("component delete", flag.ExitOnError)
		portfolioID := fs.Int64("portfolio", 0, "portfolio id")
		componentID := fs.Int64("id", 0, "component id")
		_ = fs.Parse(args)
		if *portfolioID == 0 || *componentID == 0 {
			log.Fatal("portfolio and component ids are required")
		}

		if err := api.DeleteComponent(ctx, *portfolioID, *componentID); err != nil {
			log.Fatalf("delete failed: %v", err)
		}
		fmt.Println("✅ deleted")
	case "visibility":
		fs := flag.NewFlagSet("component visibility", flag.ExitOnError)
		portfolioID := fs.Int64("portfolio", 0, "portfolio id")
		componentID := fs.Int64("id", 0, "component id")
		visible := fs.Bool("visible", true, "visible")
		_ = fs.Parse(args)
		if *portfolioID == 0 || *componentID == 0 {
			log.Fatal("portfolio and component ids are required")
		}

		if err := api.SetComponentVisibility(ctx, *portfolioID, *componentID, *visible); err != nil {
			log.Fatalf("visibility failed: %v", err)
		}
		fmt.Println("✅ updated")
	default:
		log.Fatal("usage: portfoliohub component <list|add|delete|visibility>")
	}
}

// handleBuilder runs the interactive editing loop: local state applies
// immediately, content edits autosave after a short pause, reorders
// persist optimistically.
func handleBuilder(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	if sub != "edit" {
		log.Fatal("usage: portfoliohub builder edit -portfolio <id>")
	}
	fs := flag.NewFlagSet("builder edit", flag.ExitOnError)
	portfolioID := fs.Int64("portfolio", 0, "portfolio id (0 starts a new portfolio)")
	_ = fs.Parse(args)

	token := mustToken(tokenPath)
	api := &apiClient{client: client, baseURL: baseURL, token: token}

	var p *models.Portfolio
	var comps []models.Component
	if *portfolioID != 0 {
		p = &models.Portfolio{}
		if err := doJSON(ctx, client, http.MethodGet, fmt.Sprintf("%s/portfolios/%d", baseURL, *portfolioID), token, nil, p); err != nil {
			log.Fatalf("load portfolio: %v", err)
		}
		var err error
		comps, err = api.listComponents(ctx, *portfolioID)
		if err != nil {
			log.Fatalf("load components: %v", err)
		}
	}

	session := builder.NewSession(api, p, comps, builder.DefaultAutosaveDelay)
	defer session.Close()

	fmt.Println("builder commands: list | add <type> [title] | set <id> <key> <value> | del <id> | move <from> <to> | show <id> | hide <id> | quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			break
		}
		if err := runBuilderCommand(ctx, session, fields); err != nil {
			fmt.Println("error:", err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("stdin: %v", err)
	}
	fmt.Println("saving pending edits...")
}

func runBuilderCommand(ctx context.Context, session *builder.Session, fields []string) error {
	switch fields[0] {
	case "list":
		for i, comp := range session.Components() {
			vis := " "
			if !comp.IsVisible {
				vis = "hidden"
			}
			fmt.Printf("%2d. [%d] %-20s %s\n", i, comp.ID, comp.ComponentType, vis)
		}
		return nil
	case "add":
		if len(fields) < 2 {
			return errors.New("usage: add <type> [title]")
		}
		compType := fields[1]
		if !models.IsComponentType(compType) {
			return fmt.Errorf("unknown component type %q", compType)
		}
		title := strings.Join(fields[2:], " ")
		if title == "" {
			title = "My Portfolio"
		}
		comp := models.Component{ComponentType: compType, Content: map[string]any{}, IsVisible: true}
		created, err := session.Add(ctx, title, comp)
		if err != nil {
			return err
		}
		fmt.Printf("added component %d\n", created.ID)
		return nil
	case "set":
		if len(fields) < 4 {
			return errors.New("usage: set <id> <key> <value>")
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad component id %q", fields[1])
		}
		content := componentContent(session, id)
		if content == nil {
			return errors.New("component not found")
		}
		content[fields[2]] = strings.Join(fields[3:], " ")
		return session.Edit(id, content)
	case "del":
		if len(fields) != 2 {
			return errors.New("usage: del <id>")
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad component id %q", fields[1])
		}
		return session.Delete(ctx, id)
	case "move":
		if len(fields) != 3 {
			return errors.New("usage: move <from> <to>")
		}
		from, err1 := strconv.Atoi(fields[1])
		to, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil {
			return errors.New("positions must be numbers")
		}
		return session.Reorder(ctx, from, to)
	case "show", "hide":
		if len(fields) != 2 {
			return fmt.Errorf("usage: %s <id>", fields[0])
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad component id %q", fields[1])
		}
		return session.SetVisible(ctx, id, fields[0] == "show")
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func componentContent(session *builder.Session, componentID int64) map[string]any {
	for _, comp := range session.Components() {
		if comp.ID == componentID {
			content := make(map[string]any, len(comp.Content)+1)
			for k, v := range comp.Content {
				content[k] = v
			}
			return content
		}
	}
	return nil
}

func handleExport(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	token := mustToken(tokenPath)
	switch sub {
	case "create":
		fs := flag.NewFlagSet("export create", flag.ExitOnError)
		portfolioID := fs.Int64("portfolio", 0, "portfolio id")
		exportType := fs.String("type", "html", "export type (html|zip)")
		_ = fs.Parse(args)
		if *portfolioID == 0 {
			log.Fatal("portfolio id is required")
		}

		payload := map[string]any{"portfolio_id": *portfolioID, "export_type": *exportType}
		var resp models.ExportJob
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/exports", token, payload, &resp); err != nil {
			log.Fatalf("export create failed: %v", err)
		}
		printJSON(resp)
	case "list":
		var resp listResponse[models.ExportJob]
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/exports", token, nil, &resp); err != nil {
			log.Fatalf("export list failed: %v", err)
		}
		printJSON(resp)
	case "status":
		id := requireID(args, "job id")
		var resp models.ExportJob
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/exports/"+url.PathEscape(id), token, nil, &resp); err != nil {
			log.Fatalf("export status failed: %v", err)
		}
		printJSON(resp)
	case "download":
		fs := flag.NewFlagSet("export download", flag.ExitOnError)
		id := fs.String("id", "", "job id")
		out := fs.String("out", "", "output path (defaults to job filename)")
		_ = fs.Parse(args)
		if *id == "" {
			log.Fatal("job id is required")
		}

		path, err := downloadExport(ctx, client, baseURL, token, *id, *out)
		if err != nil {
			log.Fatalf("download failed: %v", err)
		}
		log.Printf("✅ downloaded to %s", path)
	default:
		log.Fatal("usage: portfoliohub export <create|list|status|download>")
	}
}

func handlePreview(baseURL, sub string, args []string) {
	switch sub {
	case "listen":
		fs := flag.NewFlagSet("preview listen", flag.ExitOnError)
		addr := fs.String("addr", "127.0.0.1:7070", "TCP preview server address")
		pretty := fs.Bool("pretty", true, "pretty print JSON events")
		_ = fs.Parse(args)
		for {
			if err := runPreviewTCP(*addr, *pretty); err != nil {
				log.Printf("[preview] disconnected: %v", err)
			}
			time.Sleep(1 * time.Second)
		}
	case "subscribe":
		fs := flag.NewFlagSet("preview subscribe", flag.ExitOnError)
		wsURL := fs.String("ws", "", "WebSocket URL (defaults to /ws on API host)")
		_ = fs.Parse(args)

		endpoint := *wsURL
		if endpoint == "" {
			var err error
			endpoint, err = websocketURL(baseURL, "/ws")
			if err != nil {
				log.Fatalf("ws url: %v", err)
			}
		}
		if err := runWebSocket(endpoint); err != nil {
			log.Fatalf("subscribe failed: %v", err)
		}
	default:
		log.Fatal("usage: portfoliohub preview <listen|subscribe>")
	}
}

func handleNotify(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "register":
		fs := flag.NewFlagSet("notify register", flag.ExitOnError)
		addr := fs.String("addr", "127.0.0.1:7071", "UDP notify server address")
		_ = fs.Parse(args)

		token := mustToken(tokenPath)
		var me struct {
			ID string `json:"id"`
		}
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/auth/me", token, nil, &me); err != nil {
			log.Fatalf("who am i: %v", err)
		}
		if err := runNotifyUDP(*addr, me.ID); err != nil {
			log.Fatalf("notify register failed: %v", err)
		}
	default:
		log.Fatal("usage: portfoliohub notify register")
	}
}

// apiClient adapts the HTTP API to the builder session's client.
type apiClient struct {
	client  *http.Client
	baseURL string
	token   string
}

func (a *apiClient) CreatePortfolio(ctx context.Context, title string) (*models.Portfolio, error) {
	var p models.Portfolio
	payload := map[string]any{"title": title}
	if err := doJSON(ctx, a.client, http.MethodPost, a.baseURL+"/portfolios", a.token, payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *apiClient) CreateComponent(ctx context.Context, portfolioID int64, comp *models.Component) (*models.Component, error) {
	var created models.Component
	payload := map[string]any{
		"component_type": comp.ComponentType,
		"content":        comp.Content,
		"is_visible":     comp.IsVisible,
	}
	endpoint := fmt.Sprintf("%s/portfolios/%d/components", a.baseURL, portfolioID)
	if err := doJSON(ctx, a.client, http.MethodPost, endpoint, a.token, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (a *apiClient) UpdateComponent(ctx context.Context, portfolioID int64, comp *models.Component) error {
	payload := map[string]any{
		"component_type": comp.ComponentType,
		"content":        comp.Content,
		"is_visible":     comp.IsVisible,
	}
	endpoint := fmt.Sprintf("%s/portfolios/%d/components/%d", a.baseURL, portfolioID, comp.ID)
	return doJSON(ctx, a.client, http.MethodPut, endpoint, a.token, payload, nil)
}

func (a *apiClient) DeleteComponent(ctx context.Context, portfolioID, componentID int64) error {
	endpoint := fmt.Sprintf("%s/portfolios/%d/components/%d", a.baseURL, portfolioID, componentID)
	return doJSON(ctx, a.client, http.MethodDelete, endpoint, a.token, nil, nil)
}

func (a *apiClient) ReorderComponents(ctx context.Context, portfolioID int64, orders []models.Component) error {
	type orderEntry struct {
		ID    int64 `json:"id"`
		Order int   `json:"order"`
	}
	entries := make([]orderEntry, 0, len(orders))
	for _, o := range orders {
		entries = append(entries, orderEntry{ID: o.ID, Order: o.Order})
	}
	payload := map[string]any{"orders": entries}
	endpoint := fmt.Sprintf("%s/portfolios/%d/components/reorder", a.baseURL, portfolioID)
	return doJSON(ctx, a.client, http.MethodPut, endpoint, a.token, payload, nil)
}

func (a *apiClient) SetComponentVisibility(ctx context.Context, portfolioID, componentID int64, visible bool) error {
	payload := map[string]any{"is_visible": visible}
	endpoint := fmt.Sprintf("%s/portfolios/%d/components/%d/visibility", a.baseURL, portfolioID, componentID)
	return doJSON(ctx, a.client, http.MethodPut, endpoint, a.token, payload, nil)
}

func (a *apiClient) listComponents(ctx context.Context, portfolioID int64) ([]models.Component, error) {
	var resp listResponse[models.Component]
	endpoint := fmt.Sprintf("%s/portfolios/%d/components", a.baseURL, portfolioID)
	if err := doJSON(ctx, a.client, http.MethodGet, endpoint, a.token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func runPreviewTCP(addr string, pretty bool) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Printf("[preview] connected to %s", addr)
	reader := bufio.NewScanner(conn)
	for reader.Scan() {
		line := reader.Bytes()
		if !pretty {
			fmt.Println(string(line))
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(line, &obj); err != nil {
			fmt.Println(string(line))
			continue
		}
		b, _ := json.MarshalIndent(obj, "", "  ")
		fmt.Println(string(b))
	}
	if err := reader.Err(); err != nil {
		return err
	}
	return os.ErrClosed
}

func runWebSocket(wsURL string) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("[preview] connected to %s", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		fmt.Println(string(msg))
	}
}

func runNotifyUDP(addr, userID string) error {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	reg, err := json.Marshal(map[string]string{"type": "register", "user_id": userID})
	if err != nil {
		return err
	}
	if _, err := conn.Write(reg); err != nil {
		return err
	}
	log.Printf("[notify] registered with %s, waiting for export notifications", addr)

	buf := make([]byte, 2048)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return err
		}
		fmt.Println(string(buf[:n]))
	}
}

func downloadExport(ctx context.Context, client *http.Client, baseURL, token, jobID, out string) (string, error) {
	endpoint := baseURL + "/exports/" + url.PathEscape(jobID) + "/download"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("download failed: %s", strings.TrimSpace(string(data)))
	}

	if out == "" {
		out = jobID + ".html"
		if cd := resp.Header.Get("Content-Disposition"); strings.Contains(cd, ".zip") {
			out = jobID + ".zip"
		}
	}
	file, err := os.Create(out)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return "", err
	}
	return out, nil
}

func doJSON(ctx context.Context, client *http.Client, method, endpoint, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return err
	}
	return nil
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}

func requireID(args []string, what string) string {
	if len(args) == 0 || args[0] == "" {
		log.Fatalf("%s is required", what)
	}
	return args[0]
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.portfoliohub-token.json"
	}
	return filepath.Join(home, ".portfoliohub", "token.json")
}

func saveToken(path, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenData{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return "", err
	}
	return strings.TrimSpace(td.Token), nil
}

func mustToken(path string) string {
	token, err := readToken(path)
	if err != nil {
		log.Fatalf("token not found, please login: %v", err)
	}
	if token == "" {
		log.Fatal("token empty, please login")
	}
	return token
}

func clearToken(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

func printUsage() {
	fmt.Println("portfoliohub <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  auth login|register|logout")
	fmt.Println("  portfolio list|show|create|publish|unpublish|delete")
	fmt.Println("  component list|add|delete|visibility")
	fmt.Println("  builder edit")
	fmt.Println("  export create|list|status|download")
	fmt.Println("  preview listen|subscribe")
	fmt.Println("  notify register")
}
