package monday

// Operations exposed by the Monday.com MCP server that the assistant is told about.
const (
	OpListWorkspaces    = "list_workspaces"
	OpGetBoardInfo      = "get_board_info"
	OpGetBoardSchema    = "get_board_schema"
	OpGetFullBoardData  = "get_full_board_data"
	OpGetBoardItemsPage = "get_board_items_page"
	OpSearch            = "search"
)

// Operations lists every operation named in the tool description.
var Operations = []string{
	OpListWorkspaces,
	OpGetBoardInfo,
	OpGetBoardSchema,
	OpGetFullBoardData,
	OpGetBoardItemsPage,
	OpSearch,
}

// Search kinds accepted by the search operation.
var SearchTypes = []string{"BOARD", "DOCUMENTS", "FOLDERS"}

// Known boards referenced by the system prompt.
const (
	BoardDeals      int64 = 5026840561
	BoardWorkOrders int64 = 5026840578
)

// capped reports whether op fetches item pages and must obey the item ceiling.
func capped(op string) bool {
	return op == OpGetBoardItemsPage || op == OpGetFullBoardData
}
