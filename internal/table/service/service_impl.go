package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	tabledomain "github.com/smallbiznis/seatcounter/internal/table/domain"
	"github.com/smallbiznis/seatcounter/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  tabledomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  tabledomain.Repository
}

func New(p Params) tabledomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("table.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req tabledomain.CreateRequest) (*tabledomain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, tabledomain.ErrInvalidName
	}

	kind := tabledomain.TableKind(strings.TrimSpace(req.Kind))
	if kind == "" {
		kind = tabledomain.KindOpen
	}
	if kind != tabledomain.KindOpen && kind != tabledomain.KindRoom {
		return nil, tabledomain.ErrInvalidKind
	}

	now := time.Now().UTC()
	entity := &tabledomain.Table{
		ID:        s.genID.Generate(),
		Name:      name,
		Area:      strings.TrimSpace(req.Area),
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, tabledomain.ErrDuplicateName
		}
		return nil, err
	}

	return toResponse(entity), nil
}

func (s *Service) List(ctx context.Context) ([]tabledomain.Response, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]tabledomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*tabledomain.Response, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, tabledomain.ErrInvalidID
	}

	table, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, tabledomain.ErrNotFound
	}
	return toResponse(table), nil
}

func toResponse(t *tabledomain.Table) *tabledomain.Response {
	return &tabledomain.Response{
		ID:        t.ID.String(),
		Name:      t.Name,
		Area:      t.Area,
		Kind:      t.Kind,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
