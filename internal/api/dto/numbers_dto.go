package dto

// NumbersRequest is the payload shared by the list operations.
type NumbersRequest struct {
	Numbers *[]int `json:"numbers"`
}

// BinarySearchRequest is the payload for binary search.
type BinarySearchRequest struct {
	Numbers *[]int `json:"numbers"`
	Target  *int   `json:"target"`
}

type SortResponse struct {
	Numbers []int `json:"numbers"`
}

type FilterEvenResponse struct {
	EvenNumbers []int `json:"even_numbers"`
}

type SumResponse struct {
	Sum int `json:"sum"`
}

type MaxResponse struct {
	Max int `json:"max"`
}

type BinarySearchResponse struct {
	Found bool `json:"found"`
	Index int  `json:"index"`
}
