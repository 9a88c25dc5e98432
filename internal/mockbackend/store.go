package mockbackend

import (
	"encoding/binary"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/palette-scan/internal/domain/entity"
)

// Store almacén en memoria del backend de desarrollo. El backend real vive
// en otro equipo; este replica su contrato para trabajar sin red de planta.
// Mutex porque fiber atiende peticiones concurrentes.
type Store struct {
	mu sync.Mutex

	palettes    map[string]*entity.Palette
	productions map[string]*entity.Production
	mouvements  []entity.MouvementStock
	clients     map[int]*entity.Client
	nextClient  int

	users map[string]storedUser // username -> credenciales

	version     uint64          // contador para rowVersionKey
	raceOnPatch map[string]bool // ids con escritor concurrente simulado
}

type storedUser struct {
	user         entity.User
	passwordHash []byte
}

// NewStore crea el almacén vacío.
func NewStore() *Store {
	return &Store{
		palettes:    make(map[string]*entity.Palette),
		productions: make(map[string]*entity.Production),
		clients:     make(map[int]*entity.Client),
		nextClient:  1,
		users:       make(map[string]storedUser),
		raceOnPatch: make(map[string]bool),
	}
}

// nextVersion genera el siguiente rowVersionKey (8 bytes big-endian, como
// el rowversion de SQL Server que imita).
func (s *Store) nextVersion() entity.RowVersionKey {
	s.version++
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, s.version)
	return key
}

// Seed carga el juego de datos de desarrollo: palettes pendientes y
// declaradas con sus productions, un cliente y un operario.
func (s *Store) Seed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dec := func(v string) *decimal.Decimal {
		d := decimal.RequireFromString(v)
		return &d
	}
	iptr := func(n int) *int { return &n }

	s.productions["PR1"] = &entity.Production{
		ID:                     "PR1",
		ArticleCode:            "TOM-GRP-6",
		ArticleDesignation:     "Tomate grappe 6kg",
		ConditionnementCode:    iptr(12),
		ConditionnementRefCode: iptr(440),
		NbreUniteParPalette:    iptr(80),
		UniteDePoids:           "kg",
		PoidsBrutUnitaire:      dec("6.35"),
		TareUnitaireEmballage:  dec("0.35"),
		PoidsBrutPalette:       dec("508.00"),
		TareEmballagePalette:   dec("28.00"),
		PoidsNetPalette:        dec("480.00"),
		NumeroProduction:       "PROD-2026-114",
		Annee:                  2026,
		Semaine:                14,
	}
	s.productions["PR2"] = &entity.Production{
		ID:                  "PR2",
		ArticleCode:         "CON-LIS-10",
		ArticleDesignation:  "Concombre lisse 10kg",
		ConditionnementCode: iptr(7),
		NbreUniteParPalette: iptr(60),
		UniteDePoids:        "kg",
		PoidsBrutPalette:    dec("620.00"),
		TareEmballagePalette: dec("32.00"),
		PoidsNetPalette:     dec("588.00"),
		NumeroProduction:    "PROD-2026-108",
		Annee:               2026,
		Semaine:             13,
	}

	created := time.Now().Add(-48 * time.Hour)
	declared := time.Now().Add(-24 * time.Hour)
	s.palettes["P1"] = &entity.Palette{
		ID:               "P1",
		ProductionID:     "PR1",
		NumeroProduction: "PROD-2026-114",
		NumeroPalette:    1,
		NomProduit:       "Tomate grappe",
		TypeProduit:      "Légume",
		NomArticle:       "Tomate grappe 6kg",
		CodeArticle:      "TOM-GRP-6",
		CodeMagasin:      3,
		Statut:           entity.StatutEnCours,
		CreationDate:     &created,
		RowVersionKey:    s.nextVersion(),
	}
	s.palettes["P2"] = &entity.Palette{
		ID:               "P2",
		ProductionID:     "PR2",
		NumeroProduction: "PROD-2026-108",
		NumeroPalette:    4,
		NomProduit:       "Concombre lisse",
		TypeProduit:      "Légume",
		NomArticle:       "Concombre lisse 10kg",
		CodeArticle:      "CON-LIS-10",
		CodeMagasin:      3,
		Statut:           entity.StatutDeclaree,
		DateDeclaration:  &declared,
		CreationDate:     &created,
		ModificationDate: &declared,
		RowVersionKey:    s.nextVersion(),
	}

	s.clients[1] = &entity.Client{
		ID:                  1,
		Nom:                 "Étable du Nord",
		Adresse:             "12 rue des Halles, Lille",
		TelephoneMobile:     "+33 6 11 22 33 44",
		RowVersionKey:       s.nextVersion(),
		CreationUtilisateur: "admin",
	}
	s.nextClient = 2

	return s.addUserLocked("operario1", "secret", "operario1@entrepot.example")
}

// AddUser registra un operario con su contraseña (bcrypt).
func (s *Store) AddUser(username, password, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(username, password, email)
}

func (s *Store) addUserLocked(username, password, email string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.users[username] = storedUser{
		user:         entity.User{ID: uuid.New().String(), Username: username, Email: email},
		passwordHash: hash,
	}
	return nil
}

// Authenticate verifica credenciales y devuelve la identidad.
func (s *Store) Authenticate(username, password string) (*entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.users[username]
	if !ok {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword(stored.passwordHash, []byte(password)) != nil {
		return nil, false
	}
	u := stored.user
	return &u, true
}

// ListPalettes devuelve copias de todas las palettes.
func (s *Store) ListPalettes() []entity.Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Palette, 0, len(s.palettes))
	for _, p := range s.palettes {
		out = append(out, *p)
	}
	return out
}

// GetPalette devuelve una copia o false.
func (s *Store) GetPalette(id string) (*entity.Palette, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.palettes[id]
	if !ok {
		return nil, false
	}
	cp := *p
	return &cp, true
}

// PatchResult resultado de la actualización de palette.
type PatchResult int

const (
	PatchOK PatchResult = iota
	PatchNotFound
	PatchConflict
)

// PatchPalette aplica la actualización parcial de declaración. El
// rowVersionKey recibido debe coincidir con el almacenado; si no, otro
// operario escribió antes: conflicto.
func (s *Store) PatchPalette(id string, statut string, dateDeclaration, modificationDate time.Time, actor string, version entity.RowVersionKey) (*entity.Palette, PatchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.palettes[id]
	if !ok {
		return nil, PatchNotFound
	}
	if s.raceOnPatch[id] {
		// Otro operario escribió entre la lectura y este PATCH.
		delete(s.raceOnPatch, id)
		p.RowVersionKey = s.nextVersion()
		return nil, PatchConflict
	}
	if version != nil && !p.RowVersionKey.Equal(version) {
		return nil, PatchConflict
	}

	p.Statut = statut
	p.DateDeclaration = &dateDeclaration
	p.ModificationDate = &modificationDate
	p.ModificationUtilisateur = actor
	p.RowVersionKey = s.nextVersion()

	cp := *p
	return &cp, PatchOK
}

// RaceNextPatch hace que el siguiente PATCH sobre la palette choque con un
// escritor concurrente simulado (409), aunque el cliente haya releído la
// versión fresca justo antes. Solo para tests.
func (s *Store) RaceNextPatch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raceOnPatch[id] = true
}

// BumpPaletteVersion simula una escritura concurrente de otro operario:
// el rowVersionKey cambia sin pasar por el PATCH. Solo para tests.
func (s *Store) BumpPaletteVersion(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.palettes[id]; ok {
		p.RowVersionKey = s.nextVersion()
	}
}

// GetProduction devuelve una copia o false.
func (s *Store) GetProduction(id string) (*entity.Production, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.productions[id]
	if !ok {
		return nil, false
	}
	cp := *p
	return &cp, true
}

// DropProduction retira una production. Solo para tests: provoca el fallo
// parcial (palette declarada, production desaparecida a mitad de flujo).
func (s *Store) DropProduction(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.productions, id)
}

// CreateMouvement almacena un movimiento y devuelve la copia creada.
func (s *Store) CreateMouvement(m entity.MouvementStock) entity.MouvementStock {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	m.ID = uuid.New().String()
	m.CreationDate = &now
	m.RowVersionKey = s.nextVersion()
	s.mouvements = append(s.mouvements, m)
	return m
}

// Mouvements devuelve una copia del libro de movimientos.
func (s *Store) Mouvements() []entity.MouvementStock {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.MouvementStock, len(s.mouvements))
	copy(out, s.mouvements)
	return out
}

// ListClients devuelve copias de los clientes.
func (s *Store) ListClients() []entity.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, *c)
	}
	return out
}

// GetClient devuelve una copia o false.
func (s *Store) GetClient(id int) (*entity.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[id]
	if !ok {
		return nil, false
	}
	cp := *c
	return &cp, true
}

// CreateClient da de alta un cliente; el nombre duplicado es conflicto.
func (s *Store) CreateClient(c entity.Client) (*entity.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.clients {
		if strings.EqualFold(existing.Nom, c.Nom) {
			return nil, false
		}
	}
	c.ID = s.nextClient
	s.nextClient++
	c.RowVersionKey = s.nextVersion()
	s.clients[c.ID] = &c
	cp := c
	return &cp, true
}

// UpdateClient actualiza con control de versión optimista.
type UpdateResult int

const (
	UpdateOK UpdateResult = iota
	UpdateNotFound
	UpdateConflict
)

// UpdateClient reemplaza los campos editables si el rowVersionKey coincide.
func (s *Store) UpdateClient(id int, in entity.Client) (*entity.Client, UpdateResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, UpdateNotFound
	}
	if in.RowVersionKey != nil && !c.RowVersionKey.Equal(in.RowVersionKey) {
		return nil, UpdateConflict
	}

	c.Nom = in.Nom
	c.Adresse = in.Adresse
	c.TelephoneFixe = in.TelephoneFixe
	c.TelephoneMobile = in.TelephoneMobile
	c.Fax = in.Fax
	c.ModificationUtilisateur = in.ModificationUtilisateur
	c.RowVersionKey = s.nextVersion()

	cp := *c
	return &cp, UpdateOK
}
