// Copyright (c) 2026 Harmonia. All rights reserved.

package artist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harmonia-catalog/harmonia/internal/correction"
	"github.com/harmonia-catalog/harmonia/internal/entity/dbutil"
	"github.com/harmonia-catalog/harmonia/internal/platform/database/schema"
	"github.com/harmonia-catalog/harmonia/internal/platform/dberr"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
	"github.com/harmonia-catalog/harmonia/pkg/slice"
	"github.com/harmonia-catalog/harmonia/pkg/uuidv7"
)

// Materializer implements [correction.Materializer] for artists.
type Materializer struct{}

// NewMaterializer constructs an artist [Materializer].
func NewMaterializer() *Materializer { return &Materializer{} }

var _ correction.Materializer[Payload] = (*Materializer)(nil)

func (m *Materializer) EntityType() correction.EntityType { return correction.EntityArtist }

func (m *Materializer) Validate(ctx context.Context, p Payload) error {
	return Validate(ctx, p)
}

// tenureJSON / imageJSON are the wire shapes persisted into jsonb columns.
type tenureJSON struct {
	Join  *time.Time `json:"join,omitempty"`
	Leave *time.Time `json:"leave,omitempty"`
}

type imageJSON struct {
	ImageID string `json:"image_id"`
	Usage   string `json:"usage"`
}

func encodeTenure(ranges []TenureRange) ([]byte, error) {
	return json.Marshal(slice.Map(ranges, func(r TenureRange) tenureJSON {
		return tenureJSON{Join: r.Join, Leave: r.Leave}
	}))
}

func decodeTenure(raw []byte) ([]TenureRange, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var decoded []tenureJSON
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return slice.Map(decoded, func(d tenureJSON) TenureRange {
		return TenureRange{Join: d.Join, Leave: d.Leave}
	}), nil
}

func encodeImages(images []ImageRef) ([]byte, error) {
	return json.Marshal(slice.Map(images, func(img ImageRef) imageJSON {
		return imageJSON{ImageID: img.ImageID, Usage: img.Usage}
	}))
}

func decodeImages(raw []byte) ([]ImageRef, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var decoded []imageJSON
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return slice.Map(decoded, func(d imageJSON) ImageRef {
		return ImageRef{ImageID: d.ImageID, Usage: d.Usage}
	}), nil
}

// CreateHistory inserts an immutable snapshot of payload and its children.
func (m *Materializer) CreateHistory(ctx context.Context, tx postgres.Tx, p Payload) (string, error) {
	imagesJSON, err := encodeImages(p.Images)
	if err != nil {
		return "", fmt.Errorf("artist: encoding images: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING %s
	`,
		schema.ArtistHistory.Table,
		schema.ArtistHistory.Name, schema.ArtistHistory.Type, schema.ArtistHistory.TextAliases,
		schema.ArtistHistory.StartDate, schema.ArtistHistory.StartDatePrecision,
		schema.ArtistHistory.EndDate, schema.ArtistHistory.EndDatePrecision,
		schema.ArtistHistory.StartLocation, schema.ArtistHistory.CurrentLocation, schema.ArtistHistory.Images,
		schema.ArtistHistory.CreatedAt,
		schema.ArtistHistory.ID,
	)

	var historyID string
	err = tx.QueryRow(ctx, query,
		p.Name, p.ArtistType, p.TextAliases,
		p.StartDate.Value, p.StartDate.Precision, p.EndDate.Value, p.EndDate.Precision,
		p.StartLocation, p.CurrentLocation, imagesJSON,
	).Scan(&historyID)
	if err != nil {
		return "", dberr.Wrap(err, "create artist history")
	}

	if err := insertAliasHistory(ctx, tx, historyID, p.AliasArtistIDs); err != nil {
		return "", err
	}
	if err := insertLinkHistory(ctx, tx, historyID, p.Links); err != nil {
		return "", err
	}
	if err := insertLocalizedNameHistory(ctx, tx, historyID, p.LocalizedNames); err != nil {
		return "", err
	}
	if err := insertMembershipHistory(ctx, tx, historyID, p.ArtistType, p.Memberships); err != nil {
		return "", err
	}

	return historyID, nil
}

// CreateLive inserts payload directly into the live tables. The engine calls
// it for every proposed creation, whatever the author's role.
func (m *Materializer) CreateLive(ctx context.Context, tx postgres.Tx, p Payload) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING %s
	`,
		schema.Artist.Table,
		schema.Artist.Name, schema.Artist.Type, schema.Artist.TextAliases,
		schema.Artist.StartDate, schema.Artist.StartDatePrecision,
		schema.Artist.EndDate, schema.Artist.EndDatePrecision,
		schema.Artist.StartLocation, schema.Artist.CurrentLocation,
		schema.Artist.CreatedAt, schema.Artist.UpdatedAt,
		schema.Artist.ID,
	)

	var entityID string
	err := tx.QueryRow(ctx, query,
		p.Name, p.ArtistType, p.TextAliases,
		p.StartDate.Value, p.StartDate.Precision, p.EndDate.Value, p.EndDate.Precision,
		p.StartLocation, p.CurrentLocation,
	).Scan(&entityID)
	if err != nil {
		return "", dberr.Wrap(err, "create live artist")
	}

	if err := insertAliasesLive(ctx, tx, entityID, p.AliasArtistIDs); err != nil {
		return "", err
	}
	if err := insertLinksLive(ctx, tx, entityID, p.Links); err != nil {
		return "", err
	}
	if err := insertLocalizedNamesLive(ctx, tx, entityID, p.LocalizedNames); err != nil {
		return "", err
	}
	if err := insertMembershipsLive(ctx, tx, entityID, p.ArtistType, p.Memberships); err != nil {
		return "", err
	}
	if err := insertImageReferences(ctx, tx, entityID, p.Images); err != nil {
		return "", err
	}

	return entityID, nil
}

// historyRecord is the full set of history-row columns read back during
// Reapply.
type historyRecord struct {
	Name               string
	Type               Type
	TextAliases        []string
	StartDate          *time.Time
	StartDatePrecision *DatePrecision
	EndDate            *time.Time
	EndDatePrecision   *DatePrecision
	StartLocation      *string
	CurrentLocation    *string
	Images             []byte
}

func loadHistory(ctx context.Context, tx postgres.Tx, historyID string) (*historyRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.ArtistHistory.Name, schema.ArtistHistory.Type, schema.ArtistHistory.TextAliases,
		schema.ArtistHistory.StartDate, schema.ArtistHistory.StartDatePrecision,
		schema.ArtistHistory.EndDate, schema.ArtistHistory.EndDatePrecision,
		schema.ArtistHistory.StartLocation, schema.ArtistHistory.CurrentLocation, schema.ArtistHistory.Images,
		schema.ArtistHistory.Table, schema.ArtistHistory.ID,
	)

	h := &historyRecord{}
	err := tx.QueryRow(ctx, query, historyID).Scan(
		&h.Name, &h.Type, &h.TextAliases,
		&h.StartDate, &h.StartDatePrecision, &h.EndDate, &h.EndDatePrecision,
		&h.StartLocation, &h.CurrentLocation, &h.Images,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "load artist history")
	}
	return h, nil
}

// Reapply updates an existing live artist and all of its child relations
// to match the given history snapshot.
func (m *Materializer) Reapply(ctx context.Context, tx postgres.Tx, entityID, historyID string) error {
	h, err := loadHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = NOW()
		WHERE %s = $1
	`,
		schema.Artist.Table,
		schema.Artist.Name, schema.Artist.Type, schema.Artist.TextAliases,
		schema.Artist.StartDate, schema.Artist.StartDatePrecision,
		schema.Artist.EndDate, schema.Artist.EndDatePrecision,
		schema.Artist.StartLocation, schema.Artist.CurrentLocation, schema.Artist.UpdatedAt,
		schema.Artist.ID,
	)
	tag, err := tx.Exec(ctx, query, entityID,
		h.Name, h.Type, h.TextAliases,
		h.StartDate, h.StartDatePrecision, h.EndDate, h.EndDatePrecision,
		h.StartLocation, h.CurrentLocation,
	)
	if err != nil {
		return dberr.Wrap(err, "update live artist")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return m.applyChildrenFromHistory(ctx, tx, entityID, historyID, h)
}

// applyChildrenFromHistory performs delete-all-for-parent-then-reinsert-
// from-history for every child relation of entityID.
func (m *Materializer) applyChildrenFromHistory(ctx context.Context, tx postgres.Tx, entityID, historyID string, h *historyRecord) error {
	aliases, err := selectAliasHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	if err := replaceAliasesLive(ctx, tx, entityID, aliases); err != nil {
		return err
	}

	links, err := selectLinkHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	if err := dbutil.ReplaceChildren(ctx, tx, schema.ArtistLink.Table, schema.ArtistLink.ArtistID, entityID,
		fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", schema.ArtistLink.Table, schema.ArtistLink.ArtistID, schema.ArtistLink.URL),
		linkRows(entityID, links),
	); err != nil {
		return err
	}

	names, err := selectLocalizedNameHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	if err := dbutil.ReplaceChildren(ctx, tx, schema.ArtistLocalizedName.Table, schema.ArtistLocalizedName.ArtistID, entityID,
		fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
			schema.ArtistLocalizedName.Table, schema.ArtistLocalizedName.ArtistID, schema.ArtistLocalizedName.LanguageID, schema.ArtistLocalizedName.Name),
		localizedNameRows(entityID, names),
	); err != nil {
		return err
	}

	memberships, err := selectMembershipHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	if err := replaceMembershipsLive(ctx, tx, entityID, h.Type, memberships); err != nil {
		return err
	}

	images, err := decodeImages(h.Images)
	if err != nil {
		return fmt.Errorf("artist: decoding images: %w", err)
	}
	if err := replaceImageReferences(ctx, tx, entityID, images); err != nil {
		return err
	}

	return nil
}

// # Alias children

func insertAliasHistory(ctx context.Context, tx postgres.Tx, historyID string, otherIDs []string) error {
	rows := make([][]any, 0, len(otherIDs))
	for _, other := range otherIDs {
		rows = append(rows, []any{historyID, other})
	}
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.ArtistAliasHistory.Table, schema.ArtistAliasHistory.ArtistHistoryID, schema.ArtistAliasHistory.OtherArtistID)
	return dbutil.BatchInsert(ctx, tx, query, rows)
}

func selectAliasHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.ArtistAliasHistory.OtherArtistID, schema.ArtistAliasHistory.Table, schema.ArtistAliasHistory.ArtistHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select artist alias history")
	}
	defer rows.Close()

	var others []string
	for rows.Next() {
		var other string
		if err := rows.Scan(&other); err != nil {
			return nil, dberr.Wrap(err, "scan artist alias history")
		}
		others = append(others, other)
	}
	return others, nil
}

func insertAliasesLive(ctx context.Context, tx postgres.Tx, entityID string, otherIDs []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		schema.ArtistAlias.Table, schema.ArtistAlias.MinID, schema.ArtistAlias.MaxID)
	for _, other := range otherIDs {
		min, max := dbutil.NormalizePair(entityID, other)
		if _, err := tx.Exec(ctx, query, min, max); err != nil {
			return dberr.Wrap(err, "insert artist alias")
		}
	}
	return nil
}

func replaceAliasesLive(ctx context.Context, tx postgres.Tx, entityID string, otherIDs []string) error {
	delQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 OR %s = $1",
		schema.ArtistAlias.Table, schema.ArtistAlias.MinID, schema.ArtistAlias.MaxID)
	if _, err := tx.Exec(ctx, delQuery, entityID); err != nil {
		return dberr.Wrap(err, "clear artist alias")
	}
	return insertAliasesLive(ctx, tx, entityID, otherIDs)
}

// # Link children

func linkRows(entityID string, links []Link) [][]any {
	rows := make([][]any, 0, len(links))
	for _, l := range links {
		rows = append(rows, []any{entityID, l.URL})
	}
	return rows
}

func insertLinkHistory(ctx context.Context, tx postgres.Tx, historyID string, links []Link) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.ArtistLinkHistory.Table, schema.ArtistLinkHistory.ArtistHistoryID, schema.ArtistLinkHistory.URL)
	return dbutil.BatchInsert(ctx, tx, query, linkRows(historyID, links))
}

func selectLinkHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]Link, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.ArtistLinkHistory.URL, schema.ArtistLinkHistory.Table, schema.ArtistLinkHistory.ArtistHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select artist link history")
	}
	defer rows.Close()

	var links []Link
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, dberr.Wrap(err, "scan artist link history")
		}
		links = append(links, Link{URL: url})
	}
	return links, nil
}

func insertLinksLive(ctx context.Context, tx postgres.Tx, entityID string, links []Link) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.ArtistLink.Table, schema.ArtistLink.ArtistID, schema.ArtistLink.URL)
	return dbutil.BatchInsert(ctx, tx, query, linkRows(entityID, links))
}

// # Localized name children

func localizedNameRows(entityID string, names []LocalizedName) [][]any {
	rows := make([][]any, 0, len(names))
	for _, n := range names {
		rows = append(rows, []any{entityID, n.LanguageID, n.Name})
	}
	return rows
}

func insertLocalizedNameHistory(ctx context.Context, tx postgres.Tx, historyID string, names []LocalizedName) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.ArtistLocalizedNameHistory.Table, schema.ArtistLocalizedNameHistory.ArtistHistoryID,
		schema.ArtistLocalizedNameHistory.LanguageID, schema.ArtistLocalizedNameHistory.Name)
	return dbutil.BatchInsert(ctx, tx, query, localizedNameRows(historyID, names))
}

func selectLocalizedNameHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]LocalizedName, error) {
	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s = $1",
		schema.ArtistLocalizedNameHistory.LanguageID, schema.ArtistLocalizedNameHistory.Name,
		schema.ArtistLocalizedNameHistory.Table, schema.ArtistLocalizedNameHistory.ArtistHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select artist localized name history")
	}
	defer rows.Close()

	var names []LocalizedName
	for rows.Next() {
		n := LocalizedName{}
		if err := rows.Scan(&n.LanguageID, &n.Name); err != nil {
			return nil, dberr.Wrap(err, "scan artist localized name history")
		}
		names = append(names, n)
	}
	return names, nil
}

func insertLocalizedNamesLive(ctx context.Context, tx postgres.Tx, entityID string, names []LocalizedName) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.ArtistLocalizedName.Table, schema.ArtistLocalizedName.ArtistID,
		schema.ArtistLocalizedName.LanguageID, schema.ArtistLocalizedName.Name)
	return dbutil.BatchInsert(ctx, tx, query, localizedNameRows(entityID, names))
}

// # Membership children
//
// Membership is directed: for a Solo artist the member side is this
// artist; for a group (Multiple) artist the group side is this artist.

func insertMembershipHistory(ctx context.Context, tx postgres.Tx, historyID string, artistType Type, memberships []Membership) error {
	isGroupSide := artistType == TypeMultiple
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)",
		schema.ArtistMembershipHistory.Table, schema.ArtistMembershipHistory.ArtistHistoryID,
		schema.ArtistMembershipHistory.CounterpartArtistID, schema.ArtistMembershipHistory.IsGroupSide,
		schema.ArtistMembershipHistory.Roles, schema.ArtistMembershipHistory.Tenure)

	rows := make([][]any, 0, len(memberships))
	for _, m := range memberships {
		tenureJSON, err := encodeTenure(m.Tenure)
		if err != nil {
			return fmt.Errorf("artist: encoding tenure: %w", err)
		}
		rows = append(rows, []any{historyID, m.CounterpartArtistID, isGroupSide, m.Roles, tenureJSON})
	}
	return dbutil.BatchInsert(ctx, tx, query, rows)
}

type membershipHistoryRow struct {
	CounterpartArtistID string
	IsGroupSide         bool
	Roles               []string
	Tenure              []byte
}

func selectMembershipHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]membershipHistoryRow, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s WHERE %s = $1",
		schema.ArtistMembershipHistory.CounterpartArtistID, schema.ArtistMembershipHistory.IsGroupSide,
		schema.ArtistMembershipHistory.Roles, schema.ArtistMembershipHistory.Tenure,
		schema.ArtistMembershipHistory.Table, schema.ArtistMembershipHistory.ArtistHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select artist membership history")
	}
	defer rows.Close()

	var out []membershipHistoryRow
	for rows.Next() {
		r := membershipHistoryRow{}
		if err := rows.Scan(&r.CounterpartArtistID, &r.IsGroupSide, &r.Roles, &r.Tenure); err != nil {
			return nil, dberr.Wrap(err, "scan artist membership history")
		}
		out = append(out, r)
	}
	return out, nil
}

func insertMembershipsLive(ctx context.Context, tx postgres.Tx, entityID string, artistType Type, memberships []Membership) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)",
		schema.ArtistMembership.Table, schema.ArtistMembership.ID, schema.ArtistMembership.MemberID,
		schema.ArtistMembership.GroupID, schema.ArtistMembership.Roles, schema.ArtistMembership.Tenure)

	rows := make([][]any, 0, len(memberships))
	for _, m := range memberships {
		memberID, groupID := resolveMembershipSides(entityID, artistType == TypeMultiple, m.CounterpartArtistID)
		tenureJSON, err := encodeTenure(m.Tenure)
		if err != nil {
			return fmt.Errorf("artist: encoding tenure: %w", err)
		}
		rows = append(rows, []any{uuidv7.New(), memberID, groupID, m.Roles, tenureJSON})
	}
	return dbutil.BatchInsert(ctx, tx, query, rows)
}

func replaceMembershipsLive(ctx context.Context, tx postgres.Tx, entityID string, artistType Type, historyRows []membershipHistoryRow) error {
	delQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 OR %s = $1",
		schema.ArtistMembership.Table, schema.ArtistMembership.MemberID, schema.ArtistMembership.GroupID)
	if _, err := tx.Exec(ctx, delQuery, entityID); err != nil {
		return dberr.Wrap(err, "clear artist membership")
	}

	memberships := make([]Membership, 0, len(historyRows))
	for _, r := range historyRows {
		tenure, err := decodeTenure(r.Tenure)
		if err != nil {
			return fmt.Errorf("artist: decoding tenure: %w", err)
		}
		memberships = append(memberships, Membership{CounterpartArtistID: r.CounterpartArtistID, Roles: r.Roles, Tenure: tenure})
	}
	return insertMembershipsLive(ctx, tx, entityID, artistType, memberships)
}

// resolveMembershipSides applies the directed solo/group rule: when thisIsGroup,
// this artist occupies the group side; otherwise it occupies the member side.
func resolveMembershipSides(thisArtistID string, thisIsGroup bool, counterpartID string) (memberID, groupID string) {
	if thisIsGroup {
		return counterpartID, thisArtistID
	}
	return thisArtistID, counterpartID
}

// # Image reference children

func insertImageReferences(ctx context.Context, tx postgres.Tx, entityID string, images []ImageRef) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, NOW())",
		schema.ImageReference.Table, schema.ImageReference.ID, schema.ImageReference.ImageID,
		schema.ImageReference.EntityType, schema.ImageReference.EntityID, schema.ImageReference.Usage)

	rows := make([][]any, 0, len(images))
	for _, img := range images {
		rows = append(rows, []any{uuidv7.New(), img.ImageID, string(correction.EntityArtist), entityID, img.Usage})
	}
	return dbutil.BatchInsert(ctx, tx, query, rows)
}

func replaceImageReferences(ctx context.Context, tx postgres.Tx, entityID string, images []ImageRef) error {
	delQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2",
		schema.ImageReference.Table, schema.ImageReference.EntityType, schema.ImageReference.EntityID)
	if _, err := tx.Exec(ctx, delQuery, string(correction.EntityArtist), entityID); err != nil {
		return dberr.Wrap(err, "clear artist image references")
	}
	return insertImageReferences(ctx, tx, entityID, images)
}
