package service_test

import (
	"context"
	"io"
	"sync"
	"time"

	"streetnetwork.app/kinship/common/arangodb"
	"streetnetwork.app/kinship/common/discord"
	"streetnetwork.app/kinship/common/llm"
	"streetnetwork.app/kinship/common/pinata"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/queue"
	"streetnetwork.app/kinship/internal/service"
	"streetnetwork.app/kinship/internal/store"
)

type mockUserStore struct {
	getByIDFn         func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn      func(ctx context.Context, email string) (*model.User, error)
	getByWorkOSIDFn   func(ctx context.Context, workosID string) (*model.User, error)
	getByWalletFn     func(ctx context.Context, address string) (*model.User, error)
	getByDiscordIDFn  func(ctx context.Context, discordID string) (*model.User, error)
	listFn            func(ctx context.Context, limit, offset int32) ([]model.User, error)
	listByIDsFn       func(ctx context.Context, ids []int64) ([]model.User, error)
	createFn          func(ctx context.Context, user *model.User) error
	updateProfileFn   func(ctx context.Context, user *model.User) error
	linkWorkOSFn      func(ctx context.Context, id int64, workosID string, profileImage *string) (*model.User, error)
	updateDiscordFn   func(ctx context.Context, id int64, account model.DiscordAccount) (*model.User, error)
	setProfileImageFn func(ctx context.Context, id int64, url string) error
	setPrimaryFn      func(ctx context.Context, userID, workspaceID int64) error
	addPointsFn       func(ctx context.Context, id int64, points int32) error
	createCalls       int
	setPrimaryCalls   int
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByWorkOSID(ctx context.Context, workosID string) (*model.User, error) {
	if m.getByWorkOSIDFn != nil {
		return m.getByWorkOSIDFn(ctx, workosID)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByWallet(ctx context.Context, address string) (*model.User, error) {
	if m.getByWalletFn != nil {
		return m.getByWalletFn(ctx, address)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByDiscordID(ctx context.Context, discordID string) (*model.User, error) {
	if m.getByDiscordIDFn != nil {
		return m.getByDiscordIDFn(ctx, discordID)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) List(ctx context.Context, limit, offset int32) ([]model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockUserStore) ListByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	if m.listByIDsFn != nil {
		return m.listByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, user *model.User) error {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) LinkWorkOS(ctx context.Context, id int64, workosID string, profileImage *string) (*model.User, error) {
	if m.linkWorkOSFn != nil {
		return m.linkWorkOSFn(ctx, id, workosID, profileImage)
	}
	return &model.User{ID: id, WorkOSID: &workosID}, nil
}

func (m *mockUserStore) UpdateDiscord(ctx context.Context, id int64, account model.DiscordAccount) (*model.User, error) {
	if m.updateDiscordFn != nil {
		return m.updateDiscordFn(ctx, id, account)
	}
	return &model.User{ID: id, Discord: &account}, nil
}

func (m *mockUserStore) SetProfileImage(ctx context.Context, id int64, url string) error {
	if m.setProfileImageFn != nil {
		return m.setProfileImageFn(ctx, id, url)
	}
	return nil
}

func (m *mockUserStore) SetPrimaryWorkspaceIfUnset(ctx context.Context, userID, workspaceID int64) error {
	m.setPrimaryCalls++
	if m.setPrimaryFn != nil {
		return m.setPrimaryFn(ctx, userID, workspaceID)
	}
	return nil
}

func (m *mockUserStore) AddPoints(ctx context.Context, id int64, points int32) error {
	if m.addPointsFn != nil {
		return m.addPointsFn(ctx, id, points)
	}
	return nil
}

type mockSessionStore struct {
	createFn   func(ctx context.Context, session *model.Session) error
	getValidFn func(ctx context.Context, id int64) (*model.Session, error)
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockSessionStore) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionStore) GetValid(ctx context.Context, id int64) (*model.Session, error) {
	if m.getValidFn != nil {
		return m.getValidFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockSessionStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockSessionStore) DeleteByUser(ctx context.Context, userID int64) error {
	return nil
}

func (m *mockSessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

// mockNonceStore is an in-memory NonceStore.
type mockNonceStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMockNonceStore() *mockNonceStore {
	return &mockNonceStore{values: map[string]string{}}
}

func (m *mockNonceStore) Put(ctx context.Context, address, nonce string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[address] = nonce
	return nil
}

func (m *mockNonceStore) Take(ctx context.Context, address string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[address]
	if !ok {
		return "", store.ErrNotFound
	}
	delete(m.values, address)
	return v, nil
}

type mockIdentityProvider struct {
	authenticateFn func(ctx context.Context, code string) (*service.Identity, error)
}

func (m *mockIdentityProvider) AuthorizationURL(state string) (string, error) {
	return "https://auth.example.com/authorize?state=" + state, nil
}

func (m *mockIdentityProvider) Authenticate(ctx context.Context, code string) (*service.Identity, error) {
	return m.authenticateFn(ctx, code)
}

type mockEnqueuer struct {
	tasks []queue.Task
	err   error
}

func (m *mockEnqueuer) Enqueue(ctx context.Context, task queue.Task) error {
	m.tasks = append(m.tasks, task)
	return m.err
}

type mockMilestoneStore struct {
	createFn     func(ctx context.Context, m *model.Milestone) error
	listByUserFn func(ctx context.Context, userID int64) ([]model.Milestone, error)
	deleteFn     func(ctx context.Context, id, userID int64) error
}

func (m *mockMilestoneStore) Create(ctx context.Context, milestone *model.Milestone) error {
	if m.createFn != nil {
		return m.createFn(ctx, milestone)
	}
	return nil
}

func (m *mockMilestoneStore) GetByID(ctx context.Context, id int64) (*model.Milestone, error) {
	return nil, store.ErrNotFound
}

func (m *mockMilestoneStore) ListByUser(ctx context.Context, userID int64) ([]model.Milestone, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockMilestoneStore) Delete(ctx context.Context, id, userID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return nil
}

func (m *mockMilestoneStore) SetCID(ctx context.Context, id int64, cid string) error {
	return nil
}

type mockWorkspaceStore struct {
	getByIDFn    func(ctx context.Context, id int64) (*model.Workspace, error)
	slugExistsFn func(ctx context.Context, slug string) (bool, error)
	createFn     func(ctx context.Context, ws *model.Workspace) error
	listByUserFn func(ctx context.Context, userID int64) ([]model.Workspace, error)
}

func (m *mockWorkspaceStore) GetByID(ctx context.Context, id int64) (*model.Workspace, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockWorkspaceStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	if m.slugExistsFn != nil {
		return m.slugExistsFn(ctx, slug)
	}
	return false, nil
}

func (m *mockWorkspaceStore) Create(ctx context.Context, ws *model.Workspace) error {
	if m.createFn != nil {
		return m.createFn(ctx, ws)
	}
	return nil
}

func (m *mockWorkspaceStore) ListByUser(ctx context.Context, userID int64) ([]model.Workspace, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

// mockMemberStore keeps memberships in memory keyed by workspace and user.
type mockMemberStore struct {
	members map[[2]int64]model.WorkspaceMember
	addErr  error
}

func newMockMemberStore(members ...model.WorkspaceMember) *mockMemberStore {
	m := &mockMemberStore{members: map[[2]int64]model.WorkspaceMember{}}
	for _, member := range members {
		m.members[[2]int64{member.WorkspaceID, member.UserID}] = member
	}
	return m
}

func (m *mockMemberStore) Add(ctx context.Context, member *model.WorkspaceMember) error {
	if m.addErr != nil {
		return m.addErr
	}
	key := [2]int64{member.WorkspaceID, member.UserID}
	if _, ok := m.members[key]; ok {
		return store.ErrConflict
	}
	m.members[key] = *member
	return nil
}

func (m *mockMemberStore) Get(ctx context.Context, workspaceID, userID int64) (*model.WorkspaceMember, error) {
	member, ok := m.members[[2]int64{workspaceID, userID}]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &member, nil
}

func (m *mockMemberStore) List(ctx context.Context, workspaceID int64) ([]model.WorkspaceMember, error) {
	var result []model.WorkspaceMember
	for key, member := range m.members {
		if key[0] == workspaceID {
			result = append(result, member)
		}
	}
	return result, nil
}

func (m *mockMemberStore) Remove(ctx context.Context, workspaceID, userID int64) error {
	key := [2]int64{workspaceID, userID}
	if _, ok := m.members[key]; !ok {
		return store.ErrNotFound
	}
	delete(m.members, key)
	return nil
}

type mockInvitationStore struct {
	createFn          func(ctx context.Context, inv *model.Invitation) error
	getByIDFn         func(ctx context.Context, id int64) (*model.Invitation, error)
	getByTokenFn      func(ctx context.Context, token string) (*model.Invitation, error)
	getForUpdateFn    func(ctx context.Context, token string) (*model.Invitation, error)
	getPendingFn      func(ctx context.Context, workspaceID int64, email string) (*model.Invitation, error)
	listByWorkspaceFn func(ctx context.Context, workspaceID int64) ([]model.Invitation, error)
	acceptFn          func(ctx context.Context, id, userID int64) (*model.Invitation, error)
	revokeFn          func(ctx context.Context, id int64) (*model.Invitation, error)
	acceptCalls       int
}

func (m *mockInvitationStore) Create(ctx context.Context, inv *model.Invitation) error {
	if m.createFn != nil {
		return m.createFn(ctx, inv)
	}
	return nil
}

func (m *mockInvitationStore) GetByID(ctx context.Context, id int64) (*model.Invitation, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockInvitationStore) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, store.ErrNotFound
}

func (m *mockInvitationStore) GetByTokenForUpdate(ctx context.Context, token string) (*model.Invitation, error) {
	if m.getForUpdateFn != nil {
		return m.getForUpdateFn(ctx, token)
	}
	return nil, store.ErrNotFound
}

func (m *mockInvitationStore) GetPending(ctx context.Context, workspaceID int64, email string) (*model.Invitation, error) {
	if m.getPendingFn != nil {
		return m.getPendingFn(ctx, workspaceID, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockInvitationStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Invitation, error) {
	if m.listByWorkspaceFn != nil {
		return m.listByWorkspaceFn(ctx, workspaceID)
	}
	return nil, nil
}

func (m *mockInvitationStore) Accept(ctx context.Context, id, userID int64) (*model.Invitation, error) {
	m.acceptCalls++
	if m.acceptFn != nil {
		return m.acceptFn(ctx, id, userID)
	}
	return &model.Invitation{ID: id, Status: model.InvitationStatusAccepted, AcceptedBy: &userID}, nil
}

func (m *mockInvitationStore) Revoke(ctx context.Context, id int64) (*model.Invitation, error) {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, id)
	}
	return &model.Invitation{ID: id, Status: model.InvitationStatusRevoked}, nil
}

func (m *mockInvitationStore) ExpireOld(ctx context.Context) (int64, error) {
	return 0, nil
}

// mockConnectionStore keeps directed family edges in memory.
type mockConnectionStore struct {
	conns     map[[2]int64]model.FamilyConnection
	createErr error
}

func newMockConnectionStore(conns ...model.FamilyConnection) *mockConnectionStore {
	m := &mockConnectionStore{conns: map[[2]int64]model.FamilyConnection{}}
	for _, c := range conns {
		m.conns[[2]int64{c.UserID, c.RelatedUserID}] = c
	}
	return m
}

func (m *mockConnectionStore) Create(ctx context.Context, conn *model.FamilyConnection) error {
	if m.createErr != nil {
		return m.createErr
	}
	key := [2]int64{conn.UserID, conn.RelatedUserID}
	if _, ok := m.conns[key]; ok {
		return store.ErrConflict
	}
	m.conns[key] = *conn
	return nil
}

func (m *mockConnectionStore) Get(ctx context.Context, userID, relatedUserID int64) (*model.FamilyConnection, error) {
	c, ok := m.conns[[2]int64{userID, relatedUserID}]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (m *mockConnectionStore) ListByUser(ctx context.Context, userID int64) ([]model.FamilyConnection, error) {
	var result []model.FamilyConnection
	for key, c := range m.conns {
		if key[0] == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockConnectionStore) Confirm(ctx context.Context, userID, relatedUserID int64) error {
	key := [2]int64{userID, relatedUserID}
	c, ok := m.conns[key]
	if !ok {
		return store.ErrNotFound
	}
	c.Confirmed = true
	m.conns[key] = c
	return nil
}

func (m *mockConnectionStore) Delete(ctx context.Context, userID, relatedUserID int64) error {
	key := [2]int64{userID, relatedUserID}
	if _, ok := m.conns[key]; !ok {
		return store.ErrNotFound
	}
	delete(m.conns, key)
	return nil
}

type mockWorkspaceRelationshipStore struct {
	upserted []model.WorkspaceRelationship
}

func (m *mockWorkspaceRelationshipStore) Upsert(ctx context.Context, rel *model.WorkspaceRelationship) error {
	rel.Status = model.WorkspaceRelationshipActive
	m.upserted = append(m.upserted, *rel)
	return nil
}

func (m *mockWorkspaceRelationshipStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.WorkspaceRelationship, error) {
	var result []model.WorkspaceRelationship
	for _, r := range m.upserted {
		if r.WorkspaceID == workspaceID && r.Status == model.WorkspaceRelationshipActive {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockWorkspaceRelationshipStore) MarkRemoved(ctx context.Context, workspaceID, userID int64) (int64, error) {
	var n int64
	for i, r := range m.upserted {
		if r.WorkspaceID != workspaceID || r.Status != model.WorkspaceRelationshipActive {
			continue
		}
		if r.UserID == userID || r.RelatedUserID == userID {
			m.upserted[i].Status = model.WorkspaceRelationshipRemoved
			n++
		}
	}
	return n, nil
}

type mockCryptoUserStore struct {
	createFn func(ctx context.Context, cu *model.CryptoUser) error
	listFn   func(ctx context.Context) ([]model.CryptoUser, error)
}

func (m *mockCryptoUserStore) Create(ctx context.Context, cu *model.CryptoUser) error {
	if m.createFn != nil {
		return m.createFn(ctx, cu)
	}
	return nil
}

func (m *mockCryptoUserStore) List(ctx context.Context) ([]model.CryptoUser, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockBetaSignupStore struct {
	emails map[string]bool
}

func (m *mockBetaSignupStore) Create(ctx context.Context, signup *model.BetaSignup) error {
	if m.emails[signup.Email] {
		return store.ErrConflict
	}
	m.emails[signup.Email] = true
	return nil
}

func (m *mockBetaSignupStore) Exists(ctx context.Context, email string) (bool, error) {
	return m.emails[email], nil
}

type mockResourceStore struct {
	created        []model.Resource
	listFn         func(ctx context.Context, filter store.ResourceFilter) ([]model.Resource, error)
	listTagsFn     func(ctx context.Context) ([]string, error)
	updateStatusFn func(ctx context.Context, id int64, status model.ResourceStatus, notes *string) (*model.Resource, error)
	likeFn         func(ctx context.Context, id int64) (*model.Resource, error)
}

func (m *mockResourceStore) Create(ctx context.Context, r *model.Resource) error {
	m.created = append(m.created, *r)
	return nil
}

func (m *mockResourceStore) GetByID(ctx context.Context, id int64) (*model.Resource, error) {
	return nil, store.ErrNotFound
}

func (m *mockResourceStore) List(ctx context.Context, filter store.ResourceFilter) ([]model.Resource, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockResourceStore) ListTags(ctx context.Context) ([]string, error) {
	if m.listTagsFn != nil {
		return m.listTagsFn(ctx)
	}
	return nil, nil
}

func (m *mockResourceStore) UpdateStatus(ctx context.Context, id int64, status model.ResourceStatus, notes *string) (*model.Resource, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status, notes)
	}
	return nil, store.ErrNotFound
}

func (m *mockResourceStore) Like(ctx context.Context, id int64) (*model.Resource, error) {
	if m.likeFn != nil {
		return m.likeFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

type mockImageStore struct {
	uploadFn func(ctx context.Context, upload store.ImageUpload, r io.Reader) (*model.Image, error)
	getFn    func(ctx context.Context, id string) (*model.Image, error)
	deleted  []string
}

func (m *mockImageStore) Upload(ctx context.Context, upload store.ImageUpload, r io.Reader) (*model.Image, error) {
	return m.uploadFn(ctx, upload, r)
}

func (m *mockImageStore) Get(ctx context.Context, id string) (*model.Image, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockImageStore) Open(ctx context.Context, id string) (*model.Image, io.ReadCloser, error) {
	return nil, nil, store.ErrNotFound
}

func (m *mockImageStore) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockImageStore) ListByUser(ctx context.Context, userID int64) ([]model.Image, error) {
	return nil, nil
}

type mockTreeReader struct {
	traverseFn func(ctx context.Context, userID int64, depth int) ([]arangodb.TreeNode, []arangodb.TreeEdge, error)
}

func (m *mockTreeReader) Traverse(ctx context.Context, userID int64, depth int) ([]arangodb.TreeNode, []arangodb.TreeEdge, error) {
	return m.traverseFn(ctx, userID, depth)
}

type mockLLMClient struct {
	chatFn   func(ctx context.Context, req llm.Request, result any) (*llm.Response, error)
	requests []llm.Request
}

func (m *mockLLMClient) Chat(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
	m.requests = append(m.requests, req)
	return m.chatFn(ctx, req, result)
}

func (m *mockLLMClient) Model() string {
	return "test-model"
}

type mockDiscordClient struct {
	exchangeFn func(ctx context.Context, code string) (*discord.Profile, error)
}

func (m *mockDiscordClient) AuthCodeURL(state string) string {
	return "https://discord.com/oauth2/authorize?state=" + state
}

func (m *mockDiscordClient) Exchange(ctx context.Context, code string) (*discord.Profile, error) {
	return m.exchangeFn(ctx, code)
}

type mockPinataClient struct {
	signedURLFn func(ctx context.Context, cid string, expires time.Duration) (string, error)
	listPinsFn  func(ctx context.Context, keyvalues map[string]string) ([]pinata.Pin, error)
}

func (m *mockPinataClient) PinJSON(ctx context.Context, name string, content any, keyvalues map[string]string) (string, error) {
	return "", nil
}

func (m *mockPinataClient) SignedURL(ctx context.Context, cid string, expires time.Duration) (string, error) {
	return m.signedURLFn(ctx, cid, expires)
}

func (m *mockPinataClient) ListPins(ctx context.Context, keyvalues map[string]string) ([]pinata.Pin, error) {
	return m.listPinsFn(ctx, keyvalues)
}

func (m *mockPinataClient) GatewayURL(cid string) string {
	return "https://gateway.example/ipfs/" + cid
}

type mockStoreProvider struct {
	users       *mockUserStore
	workspaces  *mockWorkspaceStore
	members     *mockMemberStore
	invitations *mockInvitationStore
	connections *mockConnectionStore
	wsRels      *mockWorkspaceRelationshipStore
	cryptoUsers *mockCryptoUserStore
}

func (m *mockStoreProvider) Users() store.UserStore {
	if m.users == nil {
		return &mockUserStore{}
	}
	return m.users
}

func (m *mockStoreProvider) Workspaces() store.WorkspaceStore {
	if m.workspaces == nil {
		return &mockWorkspaceStore{}
	}
	return m.workspaces
}

func (m *mockStoreProvider) WorkspaceMembers() store.WorkspaceMemberStore {
	if m.members == nil {
		return newMockMemberStore()
	}
	return m.members
}

func (m *mockStoreProvider) Invitations() store.InvitationStore {
	if m.invitations == nil {
		return &mockInvitationStore{}
	}
	return m.invitations
}

func (m *mockStoreProvider) FamilyConnections() store.FamilyConnectionStore {
	if m.connections == nil {
		return newMockConnectionStore()
	}
	return m.connections
}

func (m *mockStoreProvider) WorkspaceRelationships() store.WorkspaceRelationshipStore {
	if m.wsRels == nil {
		return &mockWorkspaceRelationshipStore{}
	}
	return m.wsRels
}

func (m *mockStoreProvider) CryptoUsers() store.CryptoUserStore {
	if m.cryptoUsers == nil {
		return &mockCryptoUserStore{}
	}
	return m.cryptoUsers
}

type mockTxRunner struct {
	stores   *mockStoreProvider
	withTxFn func(ctx context.Context, fn func(stores service.StoreProvider) error) error
	calls    int
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	m.calls++
	if m.withTxFn != nil {
		return m.withTxFn(ctx, fn)
	}
	if m.stores == nil {
		return fn(&mockStoreProvider{})
	}
	return fn(m.stores)
}

func ptr[T any](v T) *T {
	return &v
}

type mockDiscordStatsStore struct {
	members  []model.DiscordMember
	byID     map[string]*model.DiscordMemberStats
	totals   store.DiscordTotals
	activity []store.ChannelActivity
	err      error
}

func (m *mockDiscordStatsStore) ListMembers(context.Context) ([]model.DiscordMember, error) {
	return m.members, m.err
}

func (m *mockDiscordStatsStore) GetMember(_ context.Context, discordUserID string) (*model.DiscordMemberStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	if stats, ok := m.byID[discordUserID]; ok {
		return stats, nil
	}
	return nil, store.ErrNotFound
}

func (m *mockDiscordStatsStore) Totals(context.Context) (store.DiscordTotals, error) {
	return m.totals, m.err
}

func (m *mockDiscordStatsStore) ChannelActivity(context.Context) ([]store.ChannelActivity, error) {
	return m.activity, m.err
}
