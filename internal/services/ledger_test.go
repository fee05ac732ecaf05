package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"wishlyBack/internal/models"
)

type fixture struct {
	stores   *fakeStores
	notifier *recordingNotifier

	wishlists     *WishlistService
	items         *ItemService
	reservations  *ReservationService
	contributions *ContributionService
	comments      *CommentService

	owner models.Actor
	list  models.Wishlist
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	stores := newFakeStores()
	notifier := &recordingNotifier{}

	f := &fixture{
		stores:   stores,
		notifier: notifier,
		wishlists: &WishlistService{
			WishlistRepo: stores, ItemRepo: stores, CommentRepo: stores, Notifier: notifier,
		},
		items: &ItemService{
			ItemRepo: stores, WishlistRepo: stores, Notifier: notifier,
		},
		reservations: &ReservationService{
			ReservationRepo: stores, ItemRepo: stores, WishlistRepo: stores, Notifier: notifier,
		},
		contributions: &ContributionService{
			ContributionRepo: stores, ItemRepo: stores, WishlistRepo: stores, Notifier: notifier,
		},
		comments: &CommentService{
			CommentRepo: stores, ItemRepo: stores, WishlistRepo: stores, Notifier: notifier,
		},
		owner: models.Actor{UserID: "owner-1"},
	}

	list, err := f.wishlists.CreateWishlist(context.Background(), f.owner.UserID, "Birthday", "", nil)
	if err != nil {
		t.Fatalf("create wishlist: %v", err)
	}
	f.list = list
	return f
}

func (f *fixture) addItem(t *testing.T, title string, target *int64) models.Item {
	t.Helper()
	item, err := f.items.AddItem(context.Background(), f.list.ID, f.owner, models.ItemFields{
		Title:       title,
		TargetCents: target,
	})
	if err != nil {
		t.Fatalf("add item %q: %v", title, err)
	}
	return item
}

func cents(v int64) *int64 { return &v }

func TestContributeRespectsFundingTarget(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, "Espresso machine", cents(5000))
	ctx := context.Background()
	guest := models.Guest

	if _, err := f.contributions.Contribute(ctx, item.ID, guest, 2000, "anna"); err != nil {
		t.Fatalf("first contribution: %v", err)
	}
	if _, err := f.contributions.Contribute(ctx, item.ID, guest, 3500, "boris"); !errors.Is(err, models.ErrExceedsTarget) {
		t.Fatalf("want ErrExceedsTarget, got %v", err)
	}
	if _, err := f.contributions.Contribute(ctx, item.ID, guest, 3000, "boris"); err != nil {
		t.Fatalf("contribution up to target: %v", err)
	}

	got, err := f.stores.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ContributedCents != 5000 {
		t.Fatalf("total = %d, want 5000", got.ContributedCents)
	}
}

func TestContributeRejectsWithoutTarget(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, "Book", nil)

	_, err := f.contributions.Contribute(context.Background(), item.ID, models.Guest, 1000, "anna")
	if !errors.Is(err, models.ErrNoFundingTarget) {
		t.Fatalf("want ErrNoFundingTarget, got %v", err)
	}
}

func TestContributeValidation(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, "Book", cents(5000))
	ctx := context.Background()

	if _, err := f.contributions.Contribute(ctx, item.ID, models.Guest, 0, "anna"); !errors.Is(err, models.ErrInvalidAmount) {
		t.Fatalf("zero amount: want ErrInvalidAmount, got %v", err)
	}
	if _, err := f.contributions.Contribute(ctx, item.ID, models.Guest, -100, "anna"); !errors.Is(err, models.ErrInvalidAmount) {
		t.Fatalf("negative amount: want ErrInvalidAmount, got %v", err)
	}
	if _, err := f.contributions.Contribute(ctx, item.ID, models.Guest, 100, "  "); !errors.Is(err, models.ErrNicknameRequired) {
		t.Fatalf("blank nickname: want ErrNicknameRequired, got %v", err)
	}
}

func TestReserveLifecycle(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, "Lamp", nil)
	ctx := context.Background()
	guest := models.Guest

	if _, err := f.reservations.Reserve(ctx, item.ID, guest, "anna"); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	if _, err := f.reservations.Reserve(ctx, item.ID, guest, "boris"); !errors.Is(err, models.ErrAlreadyReserved) {
		t.Fatalf("second reserve: want ErrAlreadyReserved, got %v", err)
	}

	if err := f.reservations.Unreserve(ctx, item.ID, guest, "boris"); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("release by stranger: want ErrForbidden, got %v", err)
	}
	if err := f.reservations.Unreserve(ctx, item.ID, guest, "anna"); err != nil {
		t.Fatalf("release by reserver: %v", err)
	}

	if _, err := f.reservations.Reserve(ctx, item.ID, guest, "boris"); err != nil {
		t.Fatalf("re-reserve after release: %v", err)
	}
}

func TestOwnerCannotReserveOwnItem(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, "Lamp", nil)

	_, err := f.reservations.Reserve(context.Background(), item.ID, f.owner, "me")
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestGroupFundableItemNotReservable(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, "Espresso machine", cents(5000))

	_, err := f.reservations.Reserve(context.Background(), item.ID, models.Guest, "anna")
	if !errors.Is(err, models.ErrGroupFundable) {
		t.Fatalf("want ErrGroupFundable, got %v", err)
	}
}

func TestUnreserveMatchesAuthenticatedIdentity(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, "Lamp", nil)
	ctx := context.Background()
	reserver := models.Actor{UserID: "user-42"}

	if _, err := f.reservations.Reserve(ctx, item.ID, reserver, "anna"); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	// A guest knowing the nickname must not release an authenticated claim.
	if err := f.reservations.Unreserve(ctx, item.ID, models.Guest, "anna"); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("guest release: want ErrForbidden, got %v", err)
	}
	if err := f.reservations.Unreserve(ctx, item.ID, models.Actor{UserID: "user-43"}, ""); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("other user release: want ErrForbidden, got %v", err)
	}
	if err := f.reservations.Unreserve(ctx, item.ID, reserver, ""); err != nil {
		t.Fatalf("owner of claim release: %v", err)
	}
}

func TestDeleteItemGuardedByContributions(t *testing.T) {
	f := newFixture(t)
	lamp := f.addItem(t, "Lamp", cents(4000))
	vase := f.addItem(t, "Vase", nil)
	ctx := context.Background()

	if _, err := f.contributions.Contribute(ctx, lamp.ID, models.Guest, 1500, "anna"); err != nil {
		t.Fatalf("contribute: %v", err)
	}

	if err := f.items.DeleteItem(ctx, lamp.ID, f.owner); !errors.Is(err, models.ErrHasContributions) {
		t.Fatalf("delete funded item: want ErrHasContributions, got %v", err)
	}
	if err := f.items.DeleteItem(ctx, vase.ID, f.owner); err != nil {
		t.Fatalf("delete clean item: %v", err)
	}
	if _, err := f.stores.GetItem(ctx, vase.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("vase should be gone, got %v", err)
	}
}

func TestDeleteItemRequiresOwner(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, "Lamp", nil)

	err := f.items.DeleteItem(context.Background(), item.ID, models.Actor{UserID: "stranger"})
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestReorderRejectsMismatchedSet(t *testing.T) {
	f := newFixture(t)
	a := f.addItem(t, "A", nil)
	b := f.addItem(t, "B", nil)
	c := f.addItem(t, "C", nil)
	ctx := context.Background()

	err := f.items.ReorderItems(ctx, f.list.ID, f.owner, []string{a.ID, b.ID, "no-such-id"})
	if !errors.Is(err, models.ErrInvalidOrder) {
		t.Fatalf("unknown id: want ErrInvalidOrder, got %v", err)
	}
	err = f.items.ReorderItems(ctx, f.list.ID, f.owner, []string{a.ID, b.ID})
	if !errors.Is(err, models.ErrInvalidOrder) {
		t.Fatalf("short list: want ErrInvalidOrder, got %v", err)
	}

	if err := f.items.ReorderItems(ctx, f.list.ID, f.owner, []string{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("valid reorder: %v", err)
	}
	views, err := f.stores.ListProjection(ctx, f.list.ID, models.Guest, "")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"C", "A", "B"}
	for i, v := range views {
		if v.Title != want[i] {
			t.Fatalf("position %d = %q, want %q", i, v.Title, want[i])
		}
	}
}

func TestConcurrentReservesSingleWinner(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, "Lamp", nil)
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.reservations.Reserve(ctx, item.ID, models.Guest, "guest")
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, models.ErrAlreadyReserved):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != n-1 {
		t.Fatalf("wins = %d, conflicts = %d, want 1 and %d", wins, conflicts, n-1)
	}
}

func TestConcurrentContributionsNeverExceedTarget(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, "Espresso machine", cents(10000))
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.contributions.Contribute(ctx, item.ID, models.Guest, 700, "guest")
			if err != nil && !errors.Is(err, models.ErrExceedsTarget) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := f.stores.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ContributedCents > 10000 {
		t.Fatalf("total %d exceeds target", got.ContributedCents)
	}
	if got.ContributedCents == 0 {
		t.Fatal("no contribution landed")
	}
}

func TestConcurrentAddsAssignUniquePositions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.items.AddItem(ctx, f.list.ID, f.owner, models.ItemFields{Title: "Gift"}); err != nil {
				t.Errorf("add: %v", err)
			}
		}()
	}
	wg.Wait()

	views, err := f.stores.ListProjection(ctx, f.list.ID, models.Guest, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != n {
		t.Fatalf("items = %d, want %d", len(views), n)
	}
	seen := make(map[int]bool, n)
	for _, v := range views {
		if seen[v.Position] {
			t.Fatalf("duplicate position %d", v.Position)
		}
		seen[v.Position] = true
		if v.Position < 0 || v.Position >= n {
			t.Fatalf("position %d out of range", v.Position)
		}
	}
}

func TestProjectionHidesReserverFromOwner(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, "Lamp", nil)
	ctx := context.Background()

	if _, err := f.reservations.Reserve(ctx, item.ID, models.Guest, "anna"); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if _, err := f.comments.AddComment(ctx, item.ID, "anna", "уже купила!"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	ownerView, err := f.wishlists.GetProjection(ctx, f.list.Slug, f.owner, "")
	if err != nil {
		t.Fatalf("owner projection: %v", err)
	}
	if !ownerView.IsOwner {
		t.Fatal("owner view not marked as owner")
	}
	ownerItem := ownerView.Items[0]
	if !ownerItem.Reserved {
		t.Fatal("owner must see that the item is reserved")
	}
	if ownerItem.ReservedBy != "" {
		t.Fatalf("owner must not see the reserver, got %q", ownerItem.ReservedBy)
	}
	if len(ownerItem.Comments) != 1 {
		t.Fatalf("owner comments = %d, want 1", len(ownerItem.Comments))
	}

	guestView, err := f.wishlists.GetProjection(ctx, f.list.Slug, models.Guest, "anna")
	if err != nil {
		t.Fatalf("guest projection: %v", err)
	}
	guestItem := guestView.Items[0]
	if guestItem.ReservedBy != "anna" {
		t.Fatalf("reserver must recognise their own claim, got %q", guestItem.ReservedBy)
	}
	if len(guestItem.Comments) != 0 {
		t.Fatal("comments must not leak to guests")
	}

	strangerView, err := f.wishlists.GetProjection(ctx, f.list.Slug, models.Guest, "boris")
	if err != nil {
		t.Fatalf("stranger projection: %v", err)
	}
	if strangerView.Items[0].ReservedBy != "" {
		t.Fatal("stranger must not see the reserver")
	}
}

func TestCreateWishlistRetriesSlug(t *testing.T) {
	stores := newFakeStores()
	stores.failSlugs = 2
	svc := &WishlistService{WishlistRepo: stores, ItemRepo: stores, CommentRepo: stores, Notifier: &recordingNotifier{}}

	w, err := svc.CreateWishlist(context.Background(), "owner-1", "Новый год", "", nil)
	if err != nil {
		t.Fatalf("create after collisions: %v", err)
	}
	if w.Slug == "" {
		t.Fatal("empty slug")
	}
}

func TestCreateWishlistGivesUpAfterRetries(t *testing.T) {
	stores := newFakeStores()
	stores.failSlugs = maxSlugAttempts
	svc := &WishlistService{WishlistRepo: stores, ItemRepo: stores, CommentRepo: stores, Notifier: &recordingNotifier{}}

	_, err := svc.CreateWishlist(context.Background(), "owner-1", "Birthday", "", nil)
	if !errors.Is(err, models.ErrSlugExhausted) {
		t.Fatalf("want ErrSlugExhausted, got %v", err)
	}
}

func TestAddCommentRejectsEmptyBody(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, "Lamp", nil)

	_, err := f.comments.AddComment(context.Background(), item.ID, "anna", "   ")
	if !errors.Is(err, models.ErrEmptyBody) {
		t.Fatalf("want ErrEmptyBody, got %v", err)
	}
}

func TestMutationsEmitChangeSignals(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, "Lamp", nil)
	ctx := context.Background()
	before := f.notifier.count()

	if _, err := f.reservations.Reserve(ctx, item.ID, models.Guest, "anna"); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := f.reservations.Unreserve(ctx, item.ID, models.Guest, "anna"); err != nil {
		t.Fatalf("unreserve: %v", err)
	}
	if _, err := f.comments.AddComment(ctx, item.ID, "anna", "note"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	if got := f.notifier.count() - before; got != 3 {
		t.Fatalf("change signals = %d, want 3", got)
	}
}
