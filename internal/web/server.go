package web

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"sort"
	"strconv"

	"github.com/coder/websocket"

	"github.com/peterkuimelis/nshapes/internal/config"
	"github.com/peterkuimelis/nshapes/internal/enemy"
)

// EnemyInfo is the JSON representation of an enemy for the /api/enemies endpoints.
type EnemyInfo struct {
	Name              string             `json:"name"`
	Tier              int                `json:"tier"`
	Icon              string             `json:"icon,omitempty"`
	Description       string             `json:"description"`
	DefeatCondition   string             `json:"defeatCondition"`
	TimerSpeed        float64            `json:"timerSpeed"`
	AutoHintsOff      bool               `json:"autoHintsOff,omitempty"`
	ManualHintsOff    bool               `json:"manualHintsOff,omitempty"`
	WeaponCounters    map[string]int     `json:"weaponCounters,omitempty"`
	WeaponReductions  map[string]float64 `json:"weaponReductions,omitempty"`
	HintGainReduction float64            `json:"hintGainReduction,omitempty"`
}

// Server is the nshapes web server: a read-only catalog API and a WebSocket
// proxy to a TCP round server.
type Server struct {
	configFile string
	registry   *enemy.Registry
	mux        *http.ServeMux
}

// NewServer creates a new web server. configFile may be empty to serve the
// default configuration.
func NewServer(configFile string) (*Server, error) {
	if configFile != "" {
		if _, err := config.Load(configFile); err != nil {
			return nil, err
		}
	}
	s := &Server{
		configFile: configFile,
		registry:   enemy.DefaultRegistry(),
		mux:        http.NewServeMux(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	// API endpoints
	s.mux.HandleFunc("GET /api/enemies", s.handleEnemies)
	s.mux.HandleFunc("GET /api/enemies/{name}", s.handleEnemy)
	s.mux.HandleFunc("GET /api/config", s.handleConfig)

	// WebSocket proxy
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler exposes the route table, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func enemyInfo(e *enemy.Enemy) EnemyInfo {
	ui := e.UIModifiers()
	mods := e.StatModifiers()
	info := EnemyInfo{
		Name:              e.Name,
		Tier:              e.Tier,
		Icon:              e.Icon,
		Description:       e.Description,
		DefeatCondition:   e.DefeatConditionText,
		TimerSpeed:        ui.TimerSpeedMultiplier,
		AutoHintsOff:      ui.DisableAutoHints,
		ManualHintsOff:    ui.DisableManualHints,
		HintGainReduction: mods.HintGainChanceReduction,
	}
	if len(ui.WeaponCounters) > 0 {
		info.WeaponCounters = make(map[string]int, len(ui.WeaponCounters))
		for _, c := range ui.WeaponCounters {
			info.WeaponCounters[string(c.Type)] = c.Reduction
		}
	}
	if len(mods.WeaponChanceReductions) > 0 {
		info.WeaponReductions = make(map[string]float64, len(mods.WeaponChanceReductions))
		for w, r := range mods.WeaponChanceReductions {
			info.WeaponReductions[string(w)] = r
		}
	}
	return info
}

func (s *Server) handleEnemies(w http.ResponseWriter, r *http.Request) {
	tier := 0
	if q := r.URL.Query().Get("tier"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < enemy.MinTier || n > enemy.MaxTier {
			http.Error(w, "tier must be 1-4", http.StatusBadRequest)
			return
		}
		tier = n
	}

	enemies := []EnemyInfo{}
	for _, name := range s.registry.Names() {
		e, _ := s.registry.Lookup(name)
		if e.Placeholder || (tier != 0 && e.Tier != tier) {
			continue
		}
		enemies = append(enemies, enemyInfo(e))
	}
	sort.SliceStable(enemies, func(i, j int) bool { return enemies[i].Tier < enemies[j].Tier })
	writeJSON(w, enemies)
}

func (s *Server) handleEnemy(w http.ResponseWriter, r *http.Request) {
	e, ok := s.registry.Lookup(r.PathValue("name"))
	if !ok {
		http.Error(w, "unknown enemy", http.StatusNotFound)
		return
	}
	writeJSON(w, enemyInfo(e))
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	cfg := config.Default()
	if s.configFile != "" {
		loaded, err := config.Load(s.configFile)
		if err != nil {
			http.Error(w, "could not load config file", http.StatusInternalServerError)
			return
		}
		cfg = loaded
	}
	writeJSON(w, cfg)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	// Read initial connect message from browser
	_, connectData, err := wsConn.Read(ctx)
	if err != nil {
		log.Printf("WebSocket read connect: %v", err)
		return
	}

	var connectMsg struct {
		Type  string `json:"type"`
		Addr  string `json:"addr"`
		Stage int    `json:"stage"`
	}
	if err := json.Unmarshal(connectData, &connectMsg); err != nil || connectMsg.Type != "connect" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected connect message")
		return
	}

	// Open TCP connection to the round server
	tcpConn, err := net.Dial("tcp", connectMsg.Addr)
	if err != nil {
		errMsg, _ := json.Marshal(map[string]string{
			"type":  "error",
			"error": fmt.Sprintf("Could not connect to round server at %s: %v", connectMsg.Addr, err),
		})
		wsConn.Write(ctx, websocket.MessageText, errMsg)
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()

	// Send join message over TCP
	joinMsg, _ := json.Marshal(map[string]any{
		"type":  "join",
		"stage": connectMsg.Stage,
	})
	joinMsg = append(joinMsg, '\n')
	if _, err := tcpConn.Write(joinMsg); err != nil {
		log.Printf("TCP write join: %v", err)
		return
	}

	done := make(chan struct{})

	// TCP → WebSocket (server messages to browser)
	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if err != io.EOF {
					log.Printf("TCP read error: %v", err)
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}
		}
	}()

	// WebSocket → TCP (browser input to server)
	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				return
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				log.Printf("TCP write error: %v", err)
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "round ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
